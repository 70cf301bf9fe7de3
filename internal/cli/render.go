package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/trackdeck/trackdeck/internal/domain"
)

// shortIDLen is how many id characters the tables show; commands accept any
// unique prefix back.
const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "--:--"
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}

func renderTracks(out io.Writer, tracks []domain.Track) {
	if len(tracks) == 0 {
		fmt.Fprintln(out, "no tracks")
		return
	}

	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Title", "Artist", "Album", "Duration"})
	for _, track := range tracks {
		t.AppendRow(table.Row{
			shortID(track.ID),
			track.Title,
			track.Artist,
			track.Album,
			formatDuration(track.Duration),
		})
	}
	t.Render()
}

func renderPlaylists(out io.Writer, playlists []domain.Playlist) {
	if len(playlists) == 0 {
		fmt.Fprintln(out, "no playlists")
		return
	}

	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Name", "Tracks", "Updated"})
	for _, playlist := range playlists {
		t.AppendRow(table.Row{
			shortID(playlist.ID),
			playlist.Name,
			len(playlist.TrackIDs),
			playlist.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	t.Render()
}

// resolveTrackID resolves a full id or unique id prefix to a library track.
func resolveTrackID(arg string) (string, error) {
	if _, err := application.Library().Get(arg); err == nil {
		return arg, nil
	}

	var matches []string
	for _, track := range application.Library().List() {
		if strings.HasPrefix(track.ID, arg) {
			matches = append(matches, track.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no track matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous (%d tracks match)", arg, len(matches))
	}
}

// resolvePlaylistID resolves a full id, unique id prefix, or exact name to a
// playlist.
func resolvePlaylistID(arg string) (string, error) {
	if _, err := application.Playlists().Get(arg); err == nil {
		return arg, nil
	}

	var matches []string
	for _, playlist := range application.Playlists().List() {
		if playlist.Name == arg {
			return playlist.ID, nil
		}
		if strings.HasPrefix(playlist.ID, arg) {
			matches = append(matches, playlist.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no playlist matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous (%d playlists match)", arg, len(matches))
	}
}
