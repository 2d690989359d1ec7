package main

import (
	"fmt"

	"github.com/reglet-dev/profilekit/internal/application/dto"
	"github.com/reglet-dev/profilekit/internal/infrastructure/system"
	"github.com/spf13/cobra"
)

// CommonOptions contains flags shared across all profile commands.
type CommonOptions struct {
	// Output
	Format  string
	OutFile string
	OutDir  string
	Indent  int

	// Source
	Category string
	Select   string

	// Execution
	Jobs int

	// Flags (bools grouped for alignment)
	InPlace    bool
	NoValidate bool
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Format: system.DefaultFormat,
		Indent: system.DefaultIndent,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	// Output
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Printed output format: json, yaml, table (written documents are always JSON)")
	cmd.Flags().StringVarP(&opts.OutFile, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "",
		"Write each result to <dir>/<category>/<name>.json")
	cmd.Flags().IntVar(&opts.Indent, "indent", opts.Indent,
		"JSON indentation width (0 for compact output)")

	// Source
	cmd.Flags().StringVar(&opts.Category, "category", "",
		"Profile category: machine, filament, process (default: containing directory name)")
	cmd.Flags().StringVar(&opts.Select, "select", "",
		"Keep only keys matching an expression (e.g. \"key startsWith 'filament_'\")")
	cmd.Flags().BoolVar(&opts.NoValidate, "no-validate", false,
		"Skip schema validation of loaded documents")

	// Execution
	cmd.Flags().IntVar(&opts.Jobs, "jobs", 0,
		"Maximum profiles processed concurrently (0 for no limit)")
}

// RegisterInPlaceFlag adds --in-place for commands that may rewrite their input.
func (opts *CommonOptions) RegisterInPlaceFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&opts.InPlace, "in-place", false,
		"Overwrite each source document with its result")
}

// ApplyConfig fills options the user did not set on the command line from the system config.
func (opts *CommonOptions) ApplyConfig(cmd *cobra.Command, cfg *system.Config) {
	if cfg == nil {
		return
	}
	if !cmd.Flags().Changed("format") && cfg.Output.Format != "" {
		opts.Format = cfg.Output.Format
	}
	if !cmd.Flags().Changed("indent") {
		opts.Indent = cfg.Output.Indent
	}
	if !cmd.Flags().Changed("jobs") {
		opts.Jobs = cfg.Jobs
	}
	if !cmd.Flags().Changed("no-validate") {
		opts.NoValidate = cfg.SkipValidation
	}
}

// ValidateFlags validates common options against the number of profile arguments.
func (opts *CommonOptions) ValidateFlags(numPaths int) error {
	validFormats := map[string]bool{"json": true, "yaml": true, "table": true}
	if !validFormats[opts.Format] {
		return fmt.Errorf("invalid format: %s (valid: json, yaml, table)", opts.Format)
	}

	if opts.Indent < 0 {
		return fmt.Errorf("--indent must not be negative")
	}
	if opts.Jobs < 0 {
		return fmt.Errorf("--jobs must not be negative")
	}

	if opts.InPlace && opts.OutDir != "" {
		return fmt.Errorf("--in-place and --out-dir are mutually exclusive")
	}
	if opts.OutFile != "" && (opts.InPlace || opts.OutDir != "") {
		return fmt.Errorf("--output cannot be combined with --in-place or --out-dir")
	}
	if numPaths > 1 && !opts.writesFiles() {
		return fmt.Errorf("%d profiles given: use --out-dir or --in-place to process more than one", numPaths)
	}

	return nil
}

// writesFiles reports whether results go to files instead of stdout.
func (opts *CommonOptions) writesFiles() bool {
	return opts.InPlace || opts.OutDir != ""
}

// SourceOptions converts to the application DTO.
func (opts *CommonOptions) SourceOptions() dto.SourceOptions {
	return dto.SourceOptions{
		Category:       opts.Category,
		SkipValidation: opts.NoValidate,
	}
}

// OutputOptions converts to the application DTO.
func (opts *CommonOptions) OutputOptions() dto.OutputOptions {
	return dto.OutputOptions{
		OutDir:  opts.OutDir,
		Indent:  opts.Indent,
		Jobs:    opts.Jobs,
		InPlace: opts.InPlace,
	}
}
