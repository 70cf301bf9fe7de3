package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memstore "github.com/trackdeck/trackdeck/internal/adapter/store/memory"
	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/logger"
)

func newTestTrackRepo() (*TrackRepository, *PlaylistRepository, *memstore.Store) {
	log := logger.NewTestLogger()
	store := memstore.New()
	return NewTrackRepository(store, log), NewPlaylistRepository(store, log), store
}

func TestTrackRepository_Add(t *testing.T) {
	repo, _, _ := newTestTrackRepo()

	track := repo.Add(domain.Track{
		Title:  "Song",
		Artist: "Artist",
		Source: "/music/song.mp3",
	})

	assert.NotEmpty(t, track.ID)
	assert.False(t, track.AddedAt.IsZero())
	assert.Equal(t, "Song", track.Title)

	stored, err := repo.Get(track.ID)
	require.NoError(t, err)
	assert.Equal(t, track.ID, stored.ID)
}

func TestTrackRepository_Add_DefaultsUnknownFields(t *testing.T) {
	repo, _, _ := newTestTrackRepo()

	track := repo.Add(domain.Track{Source: "/music/untitled.mp3"})

	assert.Equal(t, "Unknown Title", track.Title)
	assert.Equal(t, "Unknown Artist", track.Artist)
	assert.Equal(t, "Unknown Album", track.Album)
}

func TestTrackRepository_Get_NotFound(t *testing.T) {
	repo, _, _ := newTestTrackRepo()

	_, err := repo.Get("missing")
	assert.ErrorIs(t, err, domain.ErrTrackNotFound)
}

func TestTrackRepository_List_InsertionOrder(t *testing.T) {
	repo, _, _ := newTestTrackRepo()

	first := repo.Add(domain.Track{Title: "First"})
	second := repo.Add(domain.Track{Title: "Second"})

	tracks := repo.List()
	require.Len(t, tracks, 2)
	assert.Equal(t, first.ID, tracks[0].ID)
	assert.Equal(t, second.ID, tracks[1].ID)
}

func TestTrackRepository_Update(t *testing.T) {
	repo, _, _ := newTestTrackRepo()
	track := repo.Add(domain.Track{Title: "Old", Artist: "Artist"})

	updated, err := repo.Update(track.ID, domain.TrackFields{Title: "New"})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Title)
	// Fields left empty in the update keep their value.
	assert.Equal(t, "Artist", updated.Artist)

	_, err = repo.Update("missing", domain.TrackFields{Title: "X"})
	assert.ErrorIs(t, err, domain.ErrTrackNotFound)
}

func TestTrackRepository_Remove_CascadesToPlaylists(t *testing.T) {
	repo, playlists, _ := newTestTrackRepo()

	kept := repo.Add(domain.Track{Title: "Kept"})
	removed := repo.Add(domain.Track{Title: "Removed"})

	playlist := playlists.Create("Road Trip", "")
	playlists.AddTrack(playlist.ID, kept.ID)
	playlists.AddTrack(playlist.ID, removed.ID)

	repo.Remove(removed.ID)

	_, err := repo.Get(removed.ID)
	assert.ErrorIs(t, err, domain.ErrTrackNotFound)

	stored, err := playlists.Get(playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{kept.ID}, stored.TrackIDs)
}

func TestTrackRepository_Remove_UnknownIDIsNoop(t *testing.T) {
	repo, _, _ := newTestTrackRepo()
	repo.Add(domain.Track{Title: "Song"})

	repo.Remove("missing")
	assert.Len(t, repo.List(), 1)
}

func TestTrackRepository_StorageFailuresAreSwallowed(t *testing.T) {
	log := logger.NewTestLogger()
	store := memstore.New()
	repo := NewTrackRepository(store, log)

	track := repo.Add(domain.Track{Title: "Song"})

	// Writes start failing: mutations degrade to no-ops.
	store.SetFailWrites(true)
	repo.Remove(track.ID)
	stored, err := repo.Get(track.ID)
	require.NoError(t, err)
	assert.Equal(t, "Song", stored.Title)

	// Reads start failing: listings fall back to empty, not an error.
	store.SetFailWrites(false)
	store.SetFailReads(true)
	assert.Empty(t, repo.List())
}
