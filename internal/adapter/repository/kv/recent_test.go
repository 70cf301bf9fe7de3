package kv

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memstore "github.com/trackdeck/trackdeck/internal/adapter/store/memory"
	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/logger"
)

func newTestRecentRepo() (*RecentRepository, *TrackRepository) {
	log := logger.NewTestLogger()
	store := memstore.New()
	return NewRecentRepository(store, log), NewTrackRepository(store, log)
}

func TestRecentRepository_Record_MostRecentFirst(t *testing.T) {
	repo, _ := newTestRecentRepo()

	repo.Record("t1")
	repo.Record("t2")
	repo.Record("t3")

	entries := repo.List()
	require.Len(t, entries, 3)
	assert.Equal(t, "t3", entries[0].TrackID)
	assert.Equal(t, "t2", entries[1].TrackID)
	assert.Equal(t, "t1", entries[2].TrackID)
}

func TestRecentRepository_Record_DeduplicatesByTrack(t *testing.T) {
	repo, _ := newTestRecentRepo()

	repo.Record("t1")
	repo.Record("t2")
	repo.Record("t1")

	entries := repo.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "t1", entries[0].TrackID)
	assert.Equal(t, "t2", entries[1].TrackID)
}

func TestRecentRepository_Record_TruncatesToCap(t *testing.T) {
	repo, _ := newTestRecentRepo()

	for i := 0; i < domain.RecentlyPlayedCap+10; i++ {
		repo.Record(fmt.Sprintf("t%d", i))
	}

	entries := repo.List()
	require.Len(t, entries, domain.RecentlyPlayedCap)
	// The newest entry survives, the oldest fell off.
	assert.Equal(t, fmt.Sprintf("t%d", domain.RecentlyPlayedCap+9), entries[0].TrackID)
}

func TestRecentRepository_ListTracks_DropsRemovedTracks(t *testing.T) {
	repo, tracks := newTestRecentRepo()

	kept := tracks.Add(domain.Track{Title: "Kept"})
	removed := tracks.Add(domain.Track{Title: "Removed"})

	repo.Record(kept.ID)
	repo.Record(removed.ID)

	tracks.Remove(removed.ID)

	resolved := repo.ListTracks()
	require.Len(t, resolved, 1)
	assert.Equal(t, kept.ID, resolved[0].ID)

	// The raw log still carries the entry; only the view filters it.
	assert.Len(t, repo.List(), 2)
}

func TestRecentRepository_Clear(t *testing.T) {
	repo, _ := newTestRecentRepo()

	repo.Record("t1")
	repo.Record("t2")
	repo.Clear()

	assert.Empty(t, repo.List())
}
