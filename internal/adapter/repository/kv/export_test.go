package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memstore "github.com/trackdeck/trackdeck/internal/adapter/store/memory"
	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/logger"
)

func TestExporter_ExportRoundTrip(t *testing.T) {
	log := logger.NewTestLogger()
	source := memstore.New()

	tracks := NewTrackRepository(source, log)
	playlists := NewPlaylistRepository(source, log)
	recent := NewRecentRepository(source, log)
	settings := NewSettingsRepository(source, log)

	track := tracks.Add(domain.Track{Title: "Song"})
	playlist := playlists.Create("Mix", "")
	playlists.AddTrack(playlist.ID, track.ID)
	recent.Record(track.ID)
	settings.Save(domain.Settings{Volume: 0.5, Repeat: domain.RepeatAll, Theme: "dark"})

	snapshot := NewExporter(source, log).Export()
	assert.Len(t, snapshot.Tracks, 1)
	assert.Len(t, snapshot.Playlists, 1)
	assert.Len(t, snapshot.RecentlyPlayed, 1)
	assert.Equal(t, 0.5, snapshot.Settings.Volume)
	assert.False(t, snapshot.ExportedAt.IsZero())

	// Restore into a fresh store.
	target := memstore.New()
	NewExporter(target, log).Import(snapshot)

	restored := NewTrackRepository(target, log).List()
	require.Len(t, restored, 1)
	assert.Equal(t, track.ID, restored[0].ID)

	resolved, err := NewPlaylistRepository(target, log).ListTracks(playlist.ID)
	require.NoError(t, err)
	assert.Len(t, resolved, 1)

	assert.Equal(t, "dark", NewSettingsRepository(target, log).Load().Theme)
}

func TestExporter_ImportSkipsAbsentCollections(t *testing.T) {
	log := logger.NewTestLogger()
	store := memstore.New()

	tracks := NewTrackRepository(store, log)
	existing := tracks.Add(domain.Track{Title: "Existing"})

	// A snapshot with no tracks leaves the stored ones alone.
	NewExporter(store, log).Import(domain.Snapshot{
		Playlists: []domain.Playlist{{ID: "p1", Name: "Imported"}},
	})

	stored := tracks.List()
	require.Len(t, stored, 1)
	assert.Equal(t, existing.ID, stored[0].ID)

	playlists := NewPlaylistRepository(store, log).List()
	require.Len(t, playlists, 1)
	assert.Equal(t, "Imported", playlists[0].Name)
}
