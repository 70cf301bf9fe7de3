package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show or clear the recently-played log",
}

var recentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently played tracks, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		renderTracks(cmd.OutOrStdout(), application.Library().RecentlyPlayed())
		return nil
	},
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the recently-played log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		application.Library().ClearRecentlyPlayed()
		fmt.Fprintln(cmd.OutOrStdout(), "recently-played log cleared")
		return nil
	},
}

func init() {
	recentCmd.AddCommand(recentListCmd, recentClearCmd)
}
