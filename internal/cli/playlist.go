package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackdeck/trackdeck/internal/domain"
)

var flagPlaylistDescription string

var playlistCmd = &cobra.Command{
	Use:     "playlist",
	Aliases: []string{"pl"},
	Short:   "Manage playlists",
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new empty playlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		playlist, err := application.Playlists().Create(args[0], flagPlaylistDescription)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n",
			playlist.Name, shortID(playlist.ID))
		return nil
	},
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all playlists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		renderPlaylists(cmd.OutOrStdout(), application.Playlists().List())
		return nil
	},
}

var playlistShowCmd = &cobra.Command{
	Use:   "show <playlist>",
	Short: "Show a playlist's tracks",
	Long: `Show a playlist's tracks in playlist order.

References to tracks that have been removed from the library are not shown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolvePlaylistID(args[0])
		if err != nil {
			return err
		}

		playlist, err := application.Playlists().Get(id)
		if err != nil {
			return err
		}
		tracks, err := application.Playlists().Tracks(id)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s", playlist.Name)
		if playlist.Description != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " - %s", playlist.Description)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		renderTracks(cmd.OutOrStdout(), tracks)
		return nil
	},
}

var playlistDeleteCmd = &cobra.Command{
	Use:     "delete <playlist>",
	Aliases: []string{"rm"},
	Short:   "Delete a playlist (tracks stay in the library)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolvePlaylistID(args[0])
		if err != nil {
			return err
		}
		application.Playlists().Delete(id)
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", shortID(id))
		return nil
	},
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <playlist> <track>",
	Short: "Add a track to a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		playlistID, err := resolvePlaylistID(args[0])
		if err != nil {
			return err
		}
		trackID, err := resolveTrackID(args[1])
		if err != nil {
			return err
		}
		application.Playlists().AddTrack(playlistID, trackID)
		fmt.Fprintf(cmd.OutOrStdout(), "added %s to %s\n",
			shortID(trackID), shortID(playlistID))
		return nil
	},
}

var playlistRemoveTrackCmd = &cobra.Command{
	Use:   "remove <playlist> <track>",
	Short: "Remove a track from a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		playlistID, err := resolvePlaylistID(args[0])
		if err != nil {
			return err
		}
		trackID, err := resolveTrackID(args[1])
		if err != nil {
			return err
		}
		application.Playlists().RemoveTrack(playlistID, trackID)
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s from %s\n",
			shortID(trackID), shortID(playlistID))
		return nil
	},
}

var playlistRenameCmd = &cobra.Command{
	Use:   "rename <playlist> <name>",
	Short: "Rename a playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolvePlaylistID(args[0])
		if err != nil {
			return err
		}
		name := args[1]
		playlist, err := application.Playlists().Update(id, domain.PlaylistUpdate{Name: &name})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "renamed %s to %s\n",
			shortID(playlist.ID), playlist.Name)
		return nil
	},
}

func init() {
	playlistCreateCmd.Flags().StringVar(&flagPlaylistDescription, "description", "",
		"playlist description")

	playlistCmd.AddCommand(
		playlistCreateCmd,
		playlistListCmd,
		playlistShowCmd,
		playlistDeleteCmd,
		playlistAddCmd,
		playlistRemoveTrackCmd,
		playlistRenameCmd,
	)
}
