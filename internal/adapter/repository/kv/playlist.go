package kv

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// PlaylistRepository persists playlists under ports.KeyPlaylists.
// Membership is stored by track id; ids left dangling by a track removal are
// tolerated here and filtered by ListTracks.
//
// Thread-safe: all operations protected by sync.Mutex.
type PlaylistRepository struct {
	store  ports.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewPlaylistRepository creates a new playlist repository.
func NewPlaylistRepository(store ports.Store, logger *slog.Logger) *PlaylistRepository {
	return &PlaylistRepository{store: store, logger: logger}
}

// Create persists a new playlist with an empty track list.
func (r *PlaylistRepository) Create(name, description string) domain.Playlist {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	playlist := domain.Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		TrackIDs:    []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	playlists := readCollection[domain.Playlist](r.store, r.logger, ports.KeyPlaylists)
	playlists = append(playlists, playlist)
	writeCollection(r.store, r.logger, ports.KeyPlaylists, playlists)

	return playlist
}

// Delete removes a playlist. Member tracks are untouched.
func (r *PlaylistRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists := readCollection[domain.Playlist](r.store, r.logger, ports.KeyPlaylists)
	remaining := lo.Filter(playlists, func(p domain.Playlist, _ int) bool {
		return p.ID != id
	})
	writeCollection(r.store, r.logger, ports.KeyPlaylists, remaining)
}

// Update merges the partial update and bumps UpdatedAt.
func (r *PlaylistRepository) Update(id string, update domain.PlaylistUpdate) (*domain.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists := readCollection[domain.Playlist](r.store, r.logger, ports.KeyPlaylists)
	for i := range playlists {
		if playlists[i].ID != id {
			continue
		}
		if update.Name != nil {
			playlists[i].Name = *update.Name
		}
		if update.Description != nil {
			playlists[i].Description = *update.Description
		}
		playlists[i].UpdatedAt = time.Now()
		writeCollection(r.store, r.logger, ports.KeyPlaylists, playlists)
		playlist := playlists[i]
		return &playlist, nil
	}
	return nil, domain.ErrPlaylistNotFound
}

// AddTrack appends trackID to the playlist and bumps UpdatedAt.
// Adding an already-present track changes nothing, including UpdatedAt.
// Unknown playlists are a silent no-op.
func (r *PlaylistRepository) AddTrack(playlistID, trackID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists := readCollection[domain.Playlist](r.store, r.logger, ports.KeyPlaylists)
	for i := range playlists {
		if playlists[i].ID != playlistID || playlists[i].Contains(trackID) {
			continue
		}
		playlists[i].TrackIDs = append(playlists[i].TrackIDs, trackID)
		playlists[i].UpdatedAt = time.Now()
		writeCollection(r.store, r.logger, ports.KeyPlaylists, playlists)
		return
	}
}

// RemoveTrack removes trackID from the playlist and bumps UpdatedAt.
// Removing an absent track changes nothing. Unknown playlists are a
// silent no-op.
func (r *PlaylistRepository) RemoveTrack(playlistID, trackID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists := readCollection[domain.Playlist](r.store, r.logger, ports.KeyPlaylists)
	for i := range playlists {
		if playlists[i].ID != playlistID || !playlists[i].Contains(trackID) {
			continue
		}
		playlists[i].TrackIDs = lo.Filter(playlists[i].TrackIDs, func(id string, _ int) bool {
			return id != trackID
		})
		playlists[i].UpdatedAt = time.Now()
		writeCollection(r.store, r.logger, ports.KeyPlaylists, playlists)
		return
	}
}

// Get retrieves a playlist by id.
func (r *PlaylistRepository) Get(id string) (*domain.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists := readCollection[domain.Playlist](r.store, r.logger, ports.KeyPlaylists)
	playlist, found := lo.Find(playlists, func(p domain.Playlist) bool {
		return p.ID == id
	})
	if !found {
		return nil, domain.ErrPlaylistNotFound
	}
	return &playlist, nil
}

// List returns all playlists in creation order.
func (r *PlaylistRepository) List() []domain.Playlist {
	r.mu.Lock()
	defer r.mu.Unlock()

	return readCollection[domain.Playlist](r.store, r.logger, ports.KeyPlaylists)
}

// ListTracks resolves the playlist's track ids through the track collection.
// Ids that no longer resolve are silently dropped; this is the read-time
// mechanism that tolerates dangling references.
func (r *PlaylistRepository) ListTracks(playlistID string) ([]domain.Track, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists := readCollection[domain.Playlist](r.store, r.logger, ports.KeyPlaylists)
	playlist, found := lo.Find(playlists, func(p domain.Playlist) bool {
		return p.ID == playlistID
	})
	if !found {
		return nil, domain.ErrPlaylistNotFound
	}

	tracks := readCollection[domain.Track](r.store, r.logger, ports.KeyTracks)
	byID := lo.KeyBy(tracks, func(t domain.Track) string { return t.ID })

	resolved := make([]domain.Track, 0, len(playlist.TrackIDs))
	for _, id := range playlist.TrackIDs {
		if track, ok := byID[id]; ok {
			resolved = append(resolved, track)
		}
	}
	return resolved, nil
}

// Verify interface implementation
var _ ports.PlaylistRepository = (*PlaylistRepository)(nil)
