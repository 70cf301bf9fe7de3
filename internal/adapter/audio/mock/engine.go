// Package mock provides a mock implementation of the AudioEngine interface.
// It simulates a playback engine in memory so services can be tested without
// audio output.
//
// Commands enqueue the events a real engine would emit; tests call Pump to
// deliver them through the registered handler in order. Delivery runs on the
// caller's goroutine, which keeps tests deterministic: a command followed by
// Pump behaves exactly like a real engine whose callbacks have all fired.
package mock

import (
	"sync"
	"time"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// Engine is a mock implementation of the AudioEngine interface.
//
// Thread-safety: this implementation is thread-safe.
type Engine struct {
	mu      sync.Mutex
	handler domain.EngineEventHandler

	// Track state
	source   string
	duration time.Duration
	position time.Duration
	playing  bool
	failed   bool
	volume   float64
	muted    bool
	closed   bool

	// Queued events awaiting Pump
	pending []domain.EngineEvent

	// Behavior configuration (for testing error scenarios)
	failLoad     bool
	failPlay     bool
	manualReady  bool
	nextDuration time.Duration
}

// NewEngine creates a new mock audio engine. Sources load with a default
// duration of 3 minutes unless SetNextDuration is called.
func NewEngine() *Engine {
	return &Engine{
		volume:       1.0,
		nextDuration: 3 * time.Minute,
	}
}

// SetFailLoad configures the mock to emit an error event instead of
// becoming playable on the next SetSource (for testing).
func (m *Engine) SetFailLoad(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = fail
}

// SetFailPlay configures the mock to emit an error event on Play
// (for testing).
func (m *Engine) SetFailPlay(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPlay = fail
}

// SetManualReady stops SetSource from automatically queueing loadedmetadata
// and canplay; tests drive them explicitly with EmitReady (for testing the
// loading state).
func (m *Engine) SetManualReady(manual bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manualReady = manual
}

// SetNextDuration sets the duration reported for subsequently loaded sources.
func (m *Engine) SetNextDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextDuration = d
}

// SetHandler registers the event handler.
func (m *Engine) SetHandler(handler domain.EngineEventHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
}

// SetSource assigns a new source and queues its load event sequence.
func (m *Engine) SetSource(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	m.source = source
	m.position = 0
	m.playing = false
	m.failed = m.failLoad
	m.duration = m.nextDuration

	m.enqueue(domain.EngineEvent{Kind: domain.EngineLoadStart, Source: source})
	if m.failLoad {
		m.enqueue(domain.EngineEvent{
			Kind:   domain.EngineError,
			Source: source,
			Err:    domain.NewPlaybackError("load", source, domain.ErrFileNotFound),
		})
		return
	}
	if !m.manualReady {
		m.enqueue(domain.EngineEvent{Kind: domain.EngineLoadedMetadata, Source: source, Duration: m.duration})
		m.enqueue(domain.EngineEvent{Kind: domain.EngineCanPlay, Source: source})
	}
}

// Play starts or resumes playback of the current source.
func (m *Engine) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A failed source stays unplayable until the next SetSource.
	if m.closed || m.source == "" || m.failed {
		return
	}

	if m.failPlay {
		m.enqueue(domain.EngineEvent{
			Kind:   domain.EngineError,
			Source: m.source,
			Err:    domain.NewPlaybackError("play", m.source, nil),
		})
		return
	}

	m.playing = true
	m.enqueue(domain.EngineEvent{Kind: domain.EnginePlay, Source: m.source})
}

// Pause pauses playback, preserving the position.
func (m *Engine) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.source == "" || !m.playing {
		return
	}

	m.playing = false
	m.enqueue(domain.EngineEvent{Kind: domain.EnginePause, Source: m.source})
}

// Seek jumps to the given position, clamped to the track, and confirms with
// a timeupdate event.
func (m *Engine) Seek(position time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.source == "" {
		return
	}

	if position < 0 {
		position = 0
	}
	if position > m.duration {
		position = m.duration
	}
	m.position = position
	m.enqueue(domain.EngineEvent{Kind: domain.EngineTimeUpdate, Source: m.source, Position: position})
}

// SetVolume sets the output volume.
func (m *Engine) SetVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = volume
}

// SetMuted mutes or unmutes output.
func (m *Engine) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Close stops playback and drops any undelivered events.
func (m *Engine) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.playing = false
	m.pending = nil
	return nil
}

// EmitReady queues loadedmetadata and canplay for the current source.
// Used together with SetManualReady.
func (m *Engine) EmitReady() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.source == "" {
		return
	}
	m.enqueue(domain.EngineEvent{Kind: domain.EngineLoadedMetadata, Source: m.source, Duration: m.duration})
	m.enqueue(domain.EngineEvent{Kind: domain.EngineCanPlay, Source: m.source})
}

// Advance simulates playback progress: the position moves forward (clamped to
// the duration) and a timeupdate event is queued.
func (m *Engine) Advance(delta time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.source == "" {
		return
	}
	m.position += delta
	if m.position > m.duration {
		m.position = m.duration
	}
	m.enqueue(domain.EngineEvent{Kind: domain.EngineTimeUpdate, Source: m.source, Position: m.position})
}

// FinishTrack simulates the current source reaching end of media: playback
// stops and an ended event is queued.
func (m *Engine) FinishTrack() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.source == "" {
		return
	}
	m.playing = false
	m.position = m.duration
	m.enqueue(domain.EngineEvent{Kind: domain.EngineEnded, Source: m.source})
}

// Pump delivers queued events through the handler, in order, until the queue
// is empty. Events enqueued by handler re-entry (for example a load triggered
// by an ended event) are delivered in the same call.
func (m *Engine) Pump() {
	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.mu.Unlock()
			return
		}
		event := m.pending[0]
		m.pending = m.pending[1:]
		handler := m.handler
		m.mu.Unlock()

		if handler != nil {
			handler(event)
		}
	}
}

// enqueue appends an event. Caller must hold the lock.
func (m *Engine) enqueue(event domain.EngineEvent) {
	if m.handler == nil {
		return
	}
	m.pending = append(m.pending, event)
}

// Source returns the currently assigned source (for testing).
func (m *Engine) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

// IsPlaying reports whether the mock considers itself playing (for testing).
func (m *Engine) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// Volume returns the last volume set on the engine (for testing).
func (m *Engine) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Muted returns the engine-level mute flag (for testing).
func (m *Engine) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Position returns the simulated playback position (for testing).
func (m *Engine) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)
