// Package ports defines interfaces for dependency inversion.
// These interfaces keep the core business logic independent of the audio
// backend, the storage medium, and the presentation layer.
package ports

import (
	"time"

	"github.com/trackdeck/trackdeck/internal/domain"
)

// AudioEngine is the interface for playback engines.
// It models a media element: commands are fire-and-forget and the engine
// reports back through discrete events delivered to the registered handler.
// The engine instance is exclusively owned by the player service; no other
// component may command it directly.
//
// Event ordering per source: loadstart before loadedmetadata/canplay before
// timeupdate before ended or error. The handler may be invoked from engine
// goroutines; implementations must not hold internal locks while calling it.
type AudioEngine interface {
	// SetHandler registers the event handler. Must be called once, before the
	// first SetSource. A nil handler drops all events.
	SetHandler(handler domain.EngineEventHandler)

	// SetSource assigns a new source and begins loading it asynchronously.
	// Any in-flight load for a previous source is abandoned; events for the
	// previous source may still trickle in and carry that source.
	SetSource(source string)

	// Play starts or resumes playback of the current source.
	// A play event follows on success, an error event on failure.
	Play()

	// Pause pauses playback, preserving the position. A pause event follows.
	Pause()

	// Seek jumps to the given position. The engine clamps to the playable
	// range and confirms through a subsequent timeupdate event.
	Seek(position time.Duration)

	// SetVolume sets the output volume (0.0 to 1.0).
	SetVolume(volume float64)

	// SetMuted mutes or unmutes output without altering the volume setting.
	SetMuted(muted bool)

	// Close stops playback and releases engine resources. No events are
	// delivered after Close returns.
	Close() error
}

// MetadataProber extracts track metadata from an audio file without
// loading it for playback. Used at the import boundary.
type MetadataProber interface {
	// Probe validates that the file is an MP3 and returns a Track populated
	// with title, artist, album, artwork, and duration. The returned track
	// has no ID and no AddedAt; the repository assigns those.
	//
	// Returns a domain.ValidationError for non-MP3 input and
	// domain.ErrFileNotFound for missing files.
	Probe(path string) (*domain.Track, error)
}
