// Package ports defines repository interfaces for data persistence abstraction.
package ports

import (
	"github.com/trackdeck/trackdeck/internal/domain"
)

// TrackRepository handles the persistence of library tracks.
//
// Storage failures never surface through this interface: mutations degrade to
// logged no-ops and reads fall back to the last readable state (callers cannot
// distinguish "already satisfied" from "storage failed").
//
// Thread-safety: implementations must be thread-safe.
type TrackRepository interface {
	// Add assigns an id and AddedAt timestamp, persists the track, and
	// returns the stored record.
	Add(fields domain.Track) domain.Track

	// Remove deletes the track and strips its id from every playlist.
	// One logical operation from the caller's point of view, even though it
	// touches two collections. Unknown ids are a no-op.
	Remove(id string)

	// Update merges non-empty fields into the track's metadata.
	// Returns domain.ErrTrackNotFound if the id does not resolve.
	Update(id string, fields domain.TrackFields) (*domain.Track, error)

	// Get retrieves a track by id.
	// Returns domain.ErrTrackNotFound if the id does not resolve.
	Get(id string) (*domain.Track, error)

	// List returns all library tracks in insertion order.
	List() []domain.Track
}

// PlaylistRepository handles the persistence of playlists.
// Playlist membership is stored by track id; ids referencing removed tracks
// are tolerated at write time and filtered by ListTracks at read time.
//
// Thread-safety: implementations must be thread-safe.
type PlaylistRepository interface {
	// Create persists a new playlist with the given name and description.
	Create(name, description string) domain.Playlist

	// Delete removes a playlist. Member tracks are untouched.
	// Unknown ids are a no-op.
	Delete(id string)

	// Update merges the partial update and bumps UpdatedAt.
	// Returns domain.ErrPlaylistNotFound if the id does not resolve.
	Update(id string, update domain.PlaylistUpdate) (*domain.Playlist, error)

	// AddTrack appends trackID to the playlist and bumps UpdatedAt.
	// Idempotent: adding an already-present track changes nothing.
	AddTrack(playlistID, trackID string)

	// RemoveTrack removes trackID from the playlist and bumps UpdatedAt.
	// Idempotent: removing an absent track changes nothing.
	RemoveTrack(playlistID, trackID string)

	// Get retrieves a playlist by id.
	// Returns domain.ErrPlaylistNotFound if the id does not resolve.
	Get(id string) (*domain.Playlist, error)

	// List returns all playlists in creation order.
	List() []domain.Playlist

	// ListTracks resolves the playlist's track ids through the track
	// collection, silently dropping ids that no longer resolve.
	// Returns domain.ErrPlaylistNotFound if the playlist does not exist.
	ListTracks(playlistID string) ([]domain.Track, error)
}

// RecentRepository is the recently-played tracker: a bounded, append-only log
// keyed by track id, most-recent-first, capped at domain.RecentlyPlayedCap.
//
// Thread-safety: implementations must be thread-safe.
type RecentRepository interface {
	// Record moves trackID to the front with the current timestamp,
	// removing any prior entry for the same id, and truncates to the cap.
	Record(trackID string)

	// List returns the log, most-recent-first.
	List() []domain.RecentlyPlayedEntry

	// ListTracks joins the log through the track collection, most-recent-
	// first, silently dropping entries whose track no longer exists.
	ListTracks() []domain.Track

	// Clear empties the log.
	Clear()
}

// SettingsRepository handles the persistence of user settings.
//
// Thread-safety: implementations must be thread-safe.
type SettingsRepository interface {
	// Load returns the stored settings, or domain.DefaultSettings() if
	// nothing has been persisted or the stored document is unreadable.
	Load() domain.Settings

	// Save persists the settings.
	Save(settings domain.Settings)
}

// Exporter produces and restores snapshots of all persisted collections.
type Exporter interface {
	// Export returns a snapshot of tracks, playlists, recently-played,
	// and settings.
	Export() domain.Snapshot

	// Import replaces collections present in the snapshot; absent
	// collections are left untouched.
	Import(snapshot domain.Snapshot)
}
