package commands

import (
	"github.com/spf13/cobra"

	"github.com/paratym/idk/internal/cli"
)

func newVersionCommand() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.PrintVersion(cmd.OutOrStdout(), "idk", jsonOutput)
		},
	}
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "print JSON")
	return cmd
}
