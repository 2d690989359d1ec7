package main

import (
	"fmt"

	"github.com/reglet-dev/profilekit/internal/application/dto"
	"github.com/spf13/cobra"
)

type concretizeOptions struct {
	common     CommonOptions
	ignored    []string
	allowed    []string
	provenance bool
}

func newConcretizeCmd() *cobra.Command {
	opts := &concretizeOptions{common: DefaultCommonOptions()}

	cmd := &cobra.Command{
		Use:   "concretize <profile.json>...",
		Short: "Resolve a profile's inheritance chain into one document",
		Long: `Concretize loads a profile and every ancestor named by its "inherits" key
and merges them into one self-contained document. Later ancestors override
earlier ones and the profile's own keys override all of them.

Ancestors passed with --ignore are skipped entirely. Ancestors passed with
--allow are not expanded; the result keeps inheriting from them instead.

Examples:
  # Print the flattened document
  profilekit concretize profiles/process/0.20mm_standard.json

  # Keep inheriting from the vendor base, skip the shared common profile
  profilekit concretize profiles/filament/pla_basic.json \
      --allow fdm_filament_pla --ignore "*common*"

  # Flatten a whole category into a separate tree
  profilekit concretize profiles/process/*.json --out-dir build/`,
		Args: cobra.MinimumNArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			return runConcretize(ctx, cmd, args, opts)
		}),
	}

	opts.common.RegisterFlags(cmd)
	cmd.Flags().StringArrayVar(&opts.ignored, "ignore", nil,
		"Ancestor name to skip (repeatable)")
	cmd.Flags().StringArrayVar(&opts.allowed, "allow", nil,
		"Ancestor name to keep as the parent instead of expanding (repeatable)")
	cmd.Flags().BoolVar(&opts.provenance, "provenance", false,
		"Print which profile supplied each key")

	return cmd
}

func runConcretize(cctx *CommandContext, cmd *cobra.Command, args []string, opts *concretizeOptions) error {
	cfg := cctx.Container.SystemConfig()
	opts.common.ApplyConfig(cmd, cfg)
	if err := opts.common.ValidateFlags(len(args)); err != nil {
		return err
	}
	if opts.provenance && opts.common.writesFiles() {
		return fmt.Errorf("--provenance only applies to printed output")
	}

	req := dto.ConcretizeRequest{
		Source:     opts.common.SourceOptions(),
		Output:     opts.common.OutputOptions(),
		Metadata:   cctx.Metadata(),
		Select:     opts.common.Select,
		Paths:      args,
		Ignored:    append(append([]string{}, cfg.Ignore...), opts.ignored...),
		Allowed:    append(append([]string{}, cfg.Allow...), opts.allowed...),
		Provenance: opts.provenance,
	}

	resp, err := cctx.Container.ConcretizeUseCase().Execute(cctx.Context, req)
	if err != nil {
		return err
	}

	return emitResults(cctx, cmd, &opts.common, resp)
}
