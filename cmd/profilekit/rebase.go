package main

import (
	"github.com/reglet-dev/profilekit/internal/application/dto"
	"github.com/spf13/cobra"
)

type rebaseOptions struct {
	common  CommonOptions
	parent  string
	ignored []string
	allowed []string
}

func newRebaseCmd() *cobra.Command {
	opts := &rebaseOptions{common: DefaultCommonOptions()}

	cmd := &cobra.Command{
		Use:   "rebase <profile.json> --parent <name>",
		Short: "Re-derive a profile as a minimal diff against a new parent",
		Long: `Rebase concretizes a profile, points it at a different parent profile in
the same category and minimizes the result against that parent. The
output inherits from --parent and carries only the keys that differ.

Examples:
  profilekit rebase profiles/process/my_fine.json --parent "0.12mm_fine" --in-place`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			return runRebase(ctx, cmd, args, opts)
		}),
	}

	opts.common.RegisterFlags(cmd)
	opts.common.RegisterInPlaceFlag(cmd)
	cmd.Flags().StringVar(&opts.parent, "parent", "", "Name of the new parent profile")
	cmd.Flags().StringArrayVar(&opts.ignored, "ignore", nil,
		"Ancestor name to skip while concretizing (repeatable)")
	cmd.Flags().StringArrayVar(&opts.allowed, "allow", nil,
		"Ancestor name to keep instead of expanding (repeatable)")
	_ = cmd.MarkFlagRequired("parent")

	return cmd
}

func runRebase(cctx *CommandContext, cmd *cobra.Command, args []string, opts *rebaseOptions) error {
	cfg := cctx.Container.SystemConfig()
	opts.common.ApplyConfig(cmd, cfg)
	if err := opts.common.ValidateFlags(len(args)); err != nil {
		return err
	}

	req := dto.RebaseRequest{
		Source:   opts.common.SourceOptions(),
		Output:   opts.common.OutputOptions(),
		Metadata: cctx.Metadata(),
		Path:     args[0],
		Parent:   opts.parent,
		Select:   opts.common.Select,
		Ignored:  append(append([]string{}, cfg.Ignore...), opts.ignored...),
		Allowed:  append(append([]string{}, cfg.Allow...), opts.allowed...),
	}

	resp, err := cctx.Container.RebaseUseCase().Execute(cctx.Context, req)
	if err != nil {
		return err
	}

	return emitResults(cctx, cmd, &opts.common, resp)
}
