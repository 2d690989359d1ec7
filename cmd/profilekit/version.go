package main

import (
	"fmt"

	"github.com/reglet-dev/profilekit/internal/infrastructure/output"
	"github.com/reglet-dev/profilekit/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of profilekit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			if format == "" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "profilekit version %s\n", info.Full())
				return err
			}
			switch format {
			case "json":
				return output.NewJSONFormatter(cmd.OutOrStdout(), 2).Format(info.Map())
			case "yaml":
				return output.NewYAMLFormatter(cmd.OutOrStdout()).Format(info.Map())
			default:
				return fmt.Errorf("invalid format: %s (valid: json, yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Print build information as json or yaml")

	return cmd
}
