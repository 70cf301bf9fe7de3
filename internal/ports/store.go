// Package ports defines the Store interface for key-value persistence.
package ports

import (
	"errors"
)

// Storage keys for the persisted collections. The key names are stable and
// form the on-disk contract; changing them orphans existing data.
const (
	KeyTracks         = "mp3_player_tracks"
	KeyPlaylists      = "mp3_player_playlists"
	KeyRecentlyPlayed = "mp3_player_recently_played"
	KeySettings       = "mp3_player_settings"
)

// ErrKeyNotFound is returned by Store.Read when the key has never been
// written. Callers map it to a typed default, never to a user-facing error.
var ErrKeyNotFound = errors.New("key not found")

// Store is a key-value store of JSON-serializable documents under fixed keys.
// There is no transactional guarantee across keys; cross-collection
// consistency is re-derived at read time by the repositories.
//
// Thread-safety: implementations must be safe for concurrent use.
type Store interface {
	// Read unmarshals the document stored under key into out (a pointer).
	// Returns ErrKeyNotFound if the key has never been written.
	Read(key string, out any) error

	// Write marshals v and stores it under key, replacing any prior value.
	Write(key string, v any) error
}
