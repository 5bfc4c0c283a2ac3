package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/viscocorrect/pkg/core/version"
)

func newVersionCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := version.Get()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), b)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "viscocorrect v%s\n", b.Version)
			fmt.Fprintf(out, "  Git Commit:  %s\n", b.GitCommit)
			fmt.Fprintf(out, "  Build Date:  %s\n", b.BuildDate)
			fmt.Fprintf(out, "  Go Version:  %s\n", b.GoVersion)
			fmt.Fprintf(out, "  OS/Arch:     %s\n", b.Platform)
			fmt.Fprintf(out, "  Calibration: %s\n", b.Calibration)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
