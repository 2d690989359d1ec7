package main

import (
	"fmt"
	"io"
	"os"

	"github.com/reglet-dev/profilekit/internal/application/dto"
	"github.com/reglet-dev/profilekit/internal/application/ports"
	"github.com/spf13/cobra"
)

// emitResults prints an unwritten result or reports the files that were written.
func emitResults(cctx *CommandContext, cmd *cobra.Command, opts *CommonOptions, resp *dto.ProfileResponse) error {
	for _, result := range resp.Results {
		if result.WrittenTo != "" {
			cctx.Logger.Info("profile written", "profile", result.Ref.String(), "file", result.WrittenTo)
			continue
		}
		if err := printResult(cctx, cmd, opts, result); err != nil {
			return err
		}
	}

	cctx.Logger.Debug("request complete",
		"profiles", len(resp.Results),
		"duration", resp.Metadata.Duration)
	return nil
}

// printResult renders one result to --output or stdout.
func printResult(cctx *CommandContext, cmd *cobra.Command, opts *CommonOptions, result dto.ProfileResult) error {
	var writer io.Writer = cmd.OutOrStdout()
	if opts.OutFile != "" {
		//nolint:gosec // G304: output path is provided by the user
		f, err := os.Create(opts.OutFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				cctx.Logger.Error("failed to close output file", "file", opts.OutFile, "error", cerr)
			}
		}()
		writer = f
	}

	formatter, err := cctx.Container.FormatterFactory().Create(opts.Format, writer, ports.FormatterOptions{
		Indent: opts.Indent,
	})
	if err != nil {
		return err
	}

	var v any = result.Document
	if result.Provenance != nil {
		v = map[string]any{
			"document":   result.Document,
			"provenance": result.Provenance,
		}
	}
	if err := formatter.Format(v); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.OutFile != "" {
		cctx.Logger.Info("profile written", "profile", result.Ref.String(), "file", opts.OutFile)
	}
	return nil
}
