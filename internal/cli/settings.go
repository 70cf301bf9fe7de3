package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change persisted settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the persisted settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings := application.Settings().Get()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "volume:  %.0f%%\n", settings.Volume*100)
		fmt.Fprintf(out, "shuffle: %t\n", settings.Shuffle)
		fmt.Fprintf(out, "repeat:  %s\n", settings.Repeat)
		fmt.Fprintf(out, "theme:   %s\n", settings.Theme)
		return nil
	},
}

var settingsThemeCmd = &cobra.Command{
	Use:   "theme <light|dark>",
	Short: "Set the UI theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Settings().SetTheme(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", args[0])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsThemeCmd)
}
