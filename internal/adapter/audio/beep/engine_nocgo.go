//go:build !((linux && cgo) || windows || darwin)

// Package beep implements the audio engine on top of the beep playback
// library with speaker output.
package beep

import (
	"log/slog"
	"sync"
	"time"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// AudioAvailable indicates whether audio playback is supported in this build.
// Speaker output requires cgo for the native sound backend.
const AudioAvailable = false

// Engine is the stub used in builds without a sound backend. Loads report an
// error event so consumers surface the unavailability instead of silently
// doing nothing.
type Engine struct {
	logger  *slog.Logger
	handler domain.EngineEventHandler
	mu      sync.Mutex
}

// New creates the stub engine.
func New(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// SetHandler registers the event callback.
func (e *Engine) SetHandler(handler domain.EngineEventHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = handler
}

// SetSource reports that audio output is unavailable in this build.
func (e *Engine) SetSource(path string) {
	e.mu.Lock()
	handler := e.handler
	e.mu.Unlock()

	e.logger.Warn("audio output unavailable in this build",
		slog.String("source", path))

	if handler == nil {
		return
	}
	handler(domain.EngineEvent{Kind: domain.EngineLoadStart, Source: path})
	handler(domain.EngineEvent{
		Kind:   domain.EngineError,
		Source: path,
		Err:    domain.NewPlaybackError("load", path, domain.ErrAudioUnavailable),
	})
}

// Play is a no-op without a sound backend.
func (e *Engine) Play() {}

// Pause is a no-op without a sound backend.
func (e *Engine) Pause() {}

// Seek is a no-op without a sound backend.
func (e *Engine) Seek(position time.Duration) {}

// SetVolume is a no-op without a sound backend.
func (e *Engine) SetVolume(level float64) {}

// SetMuted is a no-op without a sound backend.
func (e *Engine) SetMuted(muted bool) {}

// Close is a no-op without a sound backend.
func (e *Engine) Close() error { return nil }

// Verify interface implementation
var _ ports.AudioEngine = (*Engine)(nil)
