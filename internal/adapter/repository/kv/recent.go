package kv

import (
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// RecentRepository persists the recently-played log under
// ports.KeyRecentlyPlayed: most-recent-first, one entry per track id,
// truncated to domain.RecentlyPlayedCap.
//
// Thread-safe: all operations protected by sync.Mutex.
type RecentRepository struct {
	store  ports.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewRecentRepository creates a new recently-played repository.
func NewRecentRepository(store ports.Store, logger *slog.Logger) *RecentRepository {
	return &RecentRepository{store: store, logger: logger}
}

// Record moves trackID to the front with the current timestamp. Any prior
// entry for the same id is removed first, so re-playing a track never
// produces a second entry.
func (r *RecentRepository) Record(trackID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := readCollection[domain.RecentlyPlayedEntry](r.store, r.logger, ports.KeyRecentlyPlayed)
	entries = lo.Filter(entries, func(e domain.RecentlyPlayedEntry, _ int) bool {
		return e.TrackID != trackID
	})

	entry := domain.RecentlyPlayedEntry{TrackID: trackID, PlayedAt: time.Now()}
	entries = append([]domain.RecentlyPlayedEntry{entry}, entries...)
	if len(entries) > domain.RecentlyPlayedCap {
		entries = entries[:domain.RecentlyPlayedCap]
	}

	writeCollection(r.store, r.logger, ports.KeyRecentlyPlayed, entries)
}

// List returns the log, most-recent-first.
func (r *RecentRepository) List() []domain.RecentlyPlayedEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return readCollection[domain.RecentlyPlayedEntry](r.store, r.logger, ports.KeyRecentlyPlayed)
}

// ListTracks joins the log through the track collection, most-recent-first.
// Entries whose track has been removed from the library are dropped.
func (r *RecentRepository) ListTracks() []domain.Track {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := readCollection[domain.RecentlyPlayedEntry](r.store, r.logger, ports.KeyRecentlyPlayed)
	tracks := readCollection[domain.Track](r.store, r.logger, ports.KeyTracks)
	byID := lo.KeyBy(tracks, func(t domain.Track) string { return t.ID })

	resolved := make([]domain.Track, 0, len(entries))
	for _, entry := range entries {
		if track, ok := byID[entry.TrackID]; ok {
			resolved = append(resolved, track)
		}
	}
	return resolved
}

// Clear empties the log.
func (r *RecentRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	writeCollection(r.store, r.logger, ports.KeyRecentlyPlayed, []domain.RecentlyPlayedEntry{})
}

// Verify interface implementation
var _ ports.RecentRepository = (*RecentRepository)(nil)
