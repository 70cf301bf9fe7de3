// Package kv implements the repositories as read-modify-write operations over
// a key-value Store of JSON collections.
//
// Persistence is best-effort by contract: a failed read falls back to the
// typed default and a failed write leaves the stored state untouched; both are
// logged and neither reaches the caller as an error. Cross-collection
// consistency is re-derived at read time (dangling playlist and
// recently-played references are filtered when resolved, not rejected when
// written).
package kv

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// TrackRepository persists the track library under ports.KeyTracks.
//
// Thread-safe: all operations protected by sync.Mutex.
type TrackRepository struct {
	store  ports.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewTrackRepository creates a new track repository.
func NewTrackRepository(store ports.Store, logger *slog.Logger) *TrackRepository {
	return &TrackRepository{store: store, logger: logger}
}

// Add assigns an id and AddedAt timestamp, persists the track, and returns
// the stored record.
func (r *TrackRepository) Add(fields domain.Track) domain.Track {
	r.mu.Lock()
	defer r.mu.Unlock()

	track := fields
	track.ID = uuid.NewString()
	track.AddedAt = time.Now()
	if track.Title == "" {
		track.Title = "Unknown Title"
	}
	if track.Artist == "" {
		track.Artist = "Unknown Artist"
	}
	if track.Album == "" {
		track.Album = "Unknown Album"
	}

	tracks := readCollection[domain.Track](r.store, r.logger, ports.KeyTracks)
	tracks = append(tracks, track)
	writeCollection(r.store, r.logger, ports.KeyTracks, tracks)

	return track
}

// Remove deletes the track from the library and strips its id from every
// playlist. Unknown ids are a no-op.
func (r *TrackRepository) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tracks := readCollection[domain.Track](r.store, r.logger, ports.KeyTracks)
	remaining := lo.Filter(tracks, func(t domain.Track, _ int) bool {
		return t.ID != id
	})
	writeCollection(r.store, r.logger, ports.KeyTracks, remaining)

	// Cascade: strip the id from playlist membership. UpdatedAt is bumped
	// only for playlists that actually referenced the track.
	playlists := readCollection[domain.Playlist](r.store, r.logger, ports.KeyPlaylists)
	changed := false
	now := time.Now()
	for i := range playlists {
		if !playlists[i].Contains(id) {
			continue
		}
		playlists[i].TrackIDs = lo.Filter(playlists[i].TrackIDs, func(tid string, _ int) bool {
			return tid != id
		})
		playlists[i].UpdatedAt = now
		changed = true
	}
	if changed {
		writeCollection(r.store, r.logger, ports.KeyPlaylists, playlists)
	}
}

// Update merges non-empty fields into the track's metadata.
func (r *TrackRepository) Update(id string, fields domain.TrackFields) (*domain.Track, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tracks := readCollection[domain.Track](r.store, r.logger, ports.KeyTracks)
	for i := range tracks {
		if tracks[i].ID != id {
			continue
		}
		if fields.Title != "" {
			tracks[i].Title = fields.Title
		}
		if fields.Artist != "" {
			tracks[i].Artist = fields.Artist
		}
		if fields.Album != "" {
			tracks[i].Album = fields.Album
		}
		if fields.Artwork != "" {
			tracks[i].Artwork = fields.Artwork
		}
		writeCollection(r.store, r.logger, ports.KeyTracks, tracks)
		track := tracks[i]
		return &track, nil
	}
	return nil, domain.ErrTrackNotFound
}

// Get retrieves a track by id.
func (r *TrackRepository) Get(id string) (*domain.Track, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tracks := readCollection[domain.Track](r.store, r.logger, ports.KeyTracks)
	track, found := lo.Find(tracks, func(t domain.Track) bool {
		return t.ID == id
	})
	if !found {
		return nil, domain.ErrTrackNotFound
	}
	return &track, nil
}

// List returns all library tracks in insertion order.
func (r *TrackRepository) List() []domain.Track {
	r.mu.Lock()
	defer r.mu.Unlock()

	return readCollection[domain.Track](r.store, r.logger, ports.KeyTracks)
}

// readCollection loads a stored collection, falling back to an empty slice
// when the key is absent or the document is unreadable.
func readCollection[T any](store ports.Store, logger *slog.Logger, key string) []T {
	var items []T
	if err := store.Read(key, &items); err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) && logger != nil {
			logger.Warn("failed to read collection, using empty default",
				slog.String("key", key), slog.Any("error", err))
		}
		return []T{}
	}
	return items
}

// writeCollection persists a collection, logging and discarding the change on
// failure (the operation degrades to a no-op).
func writeCollection[T any](store ports.Store, logger *slog.Logger, key string, items []T) {
	if err := store.Write(key, items); err != nil && logger != nil {
		logger.Warn("failed to persist collection, change not saved",
			slog.String("key", key), slog.Any("error", err))
	}
}

// Verify interface implementation
var _ ports.TrackRepository = (*TrackRepository)(nil)
