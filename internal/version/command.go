package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand adds a `version` subcommand to root.
func AttachCobraVersionCommand(root *cobra.Command, short string) {
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: short,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), Full())
		},
	})
}
