package main

import (
	"github.com/reglet-dev/profilekit/internal/application/dto"
	"github.com/spf13/cobra"
)

func newMinimizeCmd() *cobra.Command {
	opts := DefaultCommonOptions()

	cmd := &cobra.Command{
		Use:   "minimize <profile.json>...",
		Short: "Strip keys a profile's parent already provides",
		Long: `Minimize compares a profile with its fully-resolved parent and removes
every key whose value the parent already supplies. Identity keys such as
"inherits", "type" and "from" are always kept, along with any key listed
under always_keep in the config file.

A profile without "inherits" is returned unchanged.

Examples:
  # Print the minimized document
  profilekit minimize profiles/filament/my_pla.json

  # Rewrite a whole directory in place, four at a time
  profilekit minimize profiles/filament/*.json --in-place --jobs 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			return runMinimize(ctx, cmd, args, &opts)
		}),
	}

	opts.RegisterFlags(cmd)
	opts.RegisterInPlaceFlag(cmd)

	return cmd
}

func runMinimize(cctx *CommandContext, cmd *cobra.Command, args []string, opts *CommonOptions) error {
	opts.ApplyConfig(cmd, cctx.Container.SystemConfig())
	if err := opts.ValidateFlags(len(args)); err != nil {
		return err
	}

	req := dto.MinimizeRequest{
		Source:   opts.SourceOptions(),
		Output:   opts.OutputOptions(),
		Metadata: cctx.Metadata(),
		Select:   opts.Select,
		Paths:    args,
	}

	resp, err := cctx.Container.MinimizeUseCase().Execute(cctx.Context, req)
	if err != nil {
		return err
	}

	return emitResults(cctx, cmd, opts, resp)
}
