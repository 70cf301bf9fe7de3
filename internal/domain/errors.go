// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrTrackNotFound is returned when a requested track cannot be found.
	ErrTrackNotFound = errors.New("track not found")

	// ErrPlaylistNotFound is returned when a requested playlist cannot be found.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrNoTrackLoaded is returned when playback is commanded with no track loaded.
	ErrNoTrackLoaded = errors.New("no track loaded")

	// ErrQueueEmpty is returned when queue navigation is attempted on an empty queue.
	ErrQueueEmpty = errors.New("queue is empty")

	// ErrNotMP3 is returned when an imported file is not an MP3.
	ErrNotMP3 = errors.New("not an MP3 file")

	// ErrFileNotFound is returned when a file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrAudioUnavailable is returned when the build has no audio output support.
	ErrAudioUnavailable = errors.New("audio output not available in this build")
)

// StorageError represents a persistence failure.
// Per the storage contract these are swallowed at the repository boundary:
// the operation is logged and degrades to a no-op, never reaching callers.
type StorageError struct {
	Op  string // Operation that failed (e.g., "read", "write")
	Key string // Storage key involved
	Err error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for key %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError.
func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{Op: op, Key: key, Err: err}
}

// PlaybackError represents an engine failure to load or play a track.
// It is captured into PlaybackState.Err and never thrown across the
// presentation boundary.
type PlaybackError struct {
	Op     string // Operation that failed (e.g., "load", "play", "seek")
	Source string // Track source involved
	Err    error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *PlaybackError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("playback %s failed for %q: %v", e.Op, e.Source, e.Err)
	}
	return fmt.Sprintf("playback %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// NewPlaybackError creates a new PlaybackError.
func NewPlaybackError(op, source string, err error) *PlaybackError {
	return &PlaybackError{Op: op, Source: source, Err: err}
}

// ValidationError represents rejected input. It is reported synchronously to
// the caller before the repository or the engine is touched.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   any    // Value that failed validation
	Message string // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
