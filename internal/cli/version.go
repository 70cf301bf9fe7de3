package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackdeck/trackdeck/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.GetVersionInfo().FullString())
	},
}
