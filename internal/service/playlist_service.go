package service

import (
	"log/slog"
	"strings"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// PlaylistService manages playlists. Names are validated here, before the
// repository is touched; membership semantics (idempotent add and remove,
// dangling references filtered at read time) live in the repository.
type PlaylistService struct {
	logger    *slog.Logger
	playlists ports.PlaylistRepository
	bus       ports.EventBus
}

// NewPlaylistService creates a new playlist service.
func NewPlaylistService(
	logger *slog.Logger,
	playlists ports.PlaylistRepository,
	bus ports.EventBus,
) *PlaylistService {
	return &PlaylistService{
		logger:    logger,
		playlists: playlists,
		bus:       bus,
	}
}

// Create validates the name and persists a new empty playlist.
func (s *PlaylistService) Create(name, description string) (*domain.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", name, "playlist name must not be blank")
	}

	playlist := s.playlists.Create(strings.TrimSpace(name), description)
	s.logger.Info("playlist created",
		slog.String("playlist_id", playlist.ID),
		slog.String("name", playlist.Name))

	s.bus.Publish(domain.NewPlaylistChangedEvent(playlist.ID))
	return &playlist, nil
}

// Delete removes a playlist. Member tracks stay in the library.
func (s *PlaylistService) Delete(id string) {
	s.playlists.Delete(id)
	s.bus.Publish(domain.NewPlaylistChangedEvent(id))
}

// Update merges the partial update. A present but blank name is rejected.
func (s *PlaylistService) Update(id string, update domain.PlaylistUpdate) (*domain.Playlist, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, domain.NewValidationError("name", *update.Name, "playlist name must not be blank")
	}

	playlist, err := s.playlists.Update(id, update)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(domain.NewPlaylistChangedEvent(id))
	return playlist, nil
}

// AddTrack adds a track to a playlist. Adding an already-present track is a
// no-op.
func (s *PlaylistService) AddTrack(playlistID, trackID string) {
	s.playlists.AddTrack(playlistID, trackID)
	s.bus.Publish(domain.NewPlaylistChangedEvent(playlistID))
}

// RemoveTrack removes a track from a playlist. Removing an absent track is a
// no-op.
func (s *PlaylistService) RemoveTrack(playlistID, trackID string) {
	s.playlists.RemoveTrack(playlistID, trackID)
	s.bus.Publish(domain.NewPlaylistChangedEvent(playlistID))
}

// Get retrieves a playlist by id.
func (s *PlaylistService) Get(id string) (*domain.Playlist, error) {
	return s.playlists.Get(id)
}

// List returns all playlists in creation order.
func (s *PlaylistService) List() []domain.Playlist {
	return s.playlists.List()
}

// Tracks resolves a playlist's members to tracks, dropping references to
// tracks that have been removed from the library.
func (s *PlaylistService) Tracks(playlistID string) ([]domain.Track, error) {
	return s.playlists.ListTracks(playlistID)
}
