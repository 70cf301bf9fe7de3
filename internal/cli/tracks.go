package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/service"
)

var (
	flagSortBy    string
	flagTagTitle  string
	flagTagArtist string
	flagTagAlbum  string
)

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "Manage the track library",
}

var tracksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all library tracks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var tracks []domain.Track
		switch flagSortBy {
		case "":
			tracks = application.Library().List()
		case "title", "artist", "duration":
			tracks = application.Library().Sorted(service.SortKey(flagSortBy))
		default:
			return fmt.Errorf("unknown sort key %q (title, artist, duration)", flagSortBy)
		}
		renderTracks(cmd.OutOrStdout(), tracks)
		return nil
	},
}

var tracksSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tracks by title or artist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderTracks(cmd.OutOrStdout(), application.Library().Search(args[0]))
		return nil
	},
}

var tracksRemoveCmd = &cobra.Command{
	Use:     "rm <track>",
	Aliases: []string{"remove"},
	Short:   "Remove a track from the library",
	Long: `Remove a track from the library.

The track is also stripped from every playlist that references it; its
recently-played entries simply stop resolving.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveTrackID(args[0])
		if err != nil {
			return err
		}
		application.Library().Remove(id)
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", shortID(id))
		return nil
	},
}

var tracksTagCmd = &cobra.Command{
	Use:   "tag <track>",
	Short: "Update a track's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveTrackID(args[0])
		if err != nil {
			return err
		}

		track, err := application.Library().UpdateMetadata(id, domain.TrackFields{
			Title:  flagTagTitle,
			Artist: flagTagArtist,
			Album:  flagTagAlbum,
		})
		if err != nil {
			return err
		}
		renderTracks(cmd.OutOrStdout(), []domain.Track{*track})
		return nil
	},
}

func init() {
	tracksListCmd.Flags().StringVar(&flagSortBy, "sort", "",
		"sort by: title, artist, duration (default: insertion order)")

	tracksTagCmd.Flags().StringVar(&flagTagTitle, "title", "", "new title")
	tracksTagCmd.Flags().StringVar(&flagTagArtist, "artist", "", "new artist")
	tracksTagCmd.Flags().StringVar(&flagTagAlbum, "album", "", "new album")

	tracksCmd.AddCommand(tracksListCmd, tracksSearchCmd, tracksRemoveCmd, tracksTagCmd)
}
