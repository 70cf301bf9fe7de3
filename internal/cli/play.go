package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/trackdeck/trackdeck/internal/domain"
)

var (
	flagPlayPlaylist string
	flagPlayShuffle  bool
	flagPlayRepeat   string
	flagPlayVolume   float64
)

var playCmd = &cobra.Command{
	Use:   "play [track]",
	Short: "Play the library or a playlist",
	Long: `Play tracks through the system speaker.

Without arguments the whole library is queued in order; --playlist queues a
playlist instead, and a track argument starts playback at that track. Playback
runs until the queue finishes (subject to --repeat) or Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queue := application.Library().List()
		if flagPlayPlaylist != "" {
			playlistID, err := resolvePlaylistID(flagPlayPlaylist)
			if err != nil {
				return err
			}
			queue, err = application.Playlists().Tracks(playlistID)
			if err != nil {
				return err
			}
		}
		if len(queue) == 0 {
			return fmt.Errorf("nothing to play")
		}

		start := 0
		if len(args) == 1 {
			trackID, err := resolveTrackID(args[0])
			if err != nil {
				return err
			}
			found := false
			for i, track := range queue {
				if track.ID == trackID {
					start, found = i, true
					break
				}
			}
			if !found {
				return fmt.Errorf("track %s is not in the selected queue", shortID(trackID))
			}
		}

		player := application.Player()

		if cmd.Flags().Changed("volume") {
			player.SetVolume(flagPlayVolume)
		}
		if flagPlayShuffle != player.State().Shuffle {
			player.ToggleShuffle()
		}
		if flagPlayRepeat != "" {
			mode := domain.RepeatMode(flagPlayRepeat)
			if !mode.Valid() {
				return fmt.Errorf("unknown repeat mode %q (off, all, one)", flagPlayRepeat)
			}
			for player.State().Repeat != mode {
				player.CycleRepeat()
			}
		}

		out := cmd.OutOrStdout()
		loadedSub := application.EventBus().Subscribe(
			domain.EventTrackLoaded,
			func(event domain.Event) {
				if loaded, ok := event.(domain.TrackLoadedEvent); ok {
					fmt.Fprintf(out, "now playing: %s - %s\n",
						loaded.Track.Artist, loaded.Track.Title)
				}
			})
		defer application.EventBus().Unsubscribe(loadedSub)

		errorSub := application.EventBus().Subscribe(
			domain.EventTrackError,
			func(event domain.Event) {
				if failed, ok := event.(domain.TrackErrorEvent); ok {
					fmt.Fprintf(os.Stderr, "playback error: %s: %v\n",
						failed.Track.Title, failed.Err)
				}
			})
		defer application.EventBus().Unsubscribe(errorSub)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		player.Load(queue[start], queue, start)

		// The queue advances inside the player on track end; from here the
		// command only waits for playback to go idle.
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				fmt.Fprintln(out, "stopped")
				return nil
			case <-ticker.C:
				state := player.State()
				if state.IsPlaying || state.IsLoading {
					continue
				}
				if state.Err != "" {
					return fmt.Errorf("playback failed: %s", state.Err)
				}
				fmt.Fprintln(out, "queue finished")
				return nil
			}
		}
	},
}

func init() {
	playCmd.Flags().StringVar(&flagPlayPlaylist, "playlist", "", "play a playlist instead of the library")
	playCmd.Flags().BoolVar(&flagPlayShuffle, "shuffle", false, "enable shuffle")
	playCmd.Flags().StringVar(&flagPlayRepeat, "repeat", "", "repeat mode: off, all, one")
	playCmd.Flags().Float64Var(&flagPlayVolume, "volume", 1.0, "volume (0.0 to 1.0)")
}
