//go:build (linux && cgo) || windows || darwin

// Package beep implements the audio engine on top of the beep playback
// library with speaker output.
package beep

import (
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

const (
	// baseSampleRate is the speaker's fixed output rate; sources at other
	// rates are resampled to it.
	baseSampleRate = beep.SampleRate(44100)

	// resampleQuality trades CPU for interpolation quality.
	resampleQuality = 4

	// progressInterval is how often timeupdate events are emitted while a
	// track is loaded and started.
	progressInterval = 500 * time.Millisecond
)

// Engine plays MP3 files through the system speaker. Commands are
// fire-and-forget; outcomes are reported through the handler as engine
// events tagged with the source path they belong to, so a consumer can
// discard events from a superseded load.
type Engine struct {
	logger *slog.Logger

	handler     domain.EngineEventHandler
	initialized bool

	source   string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
	muted    bool
	progress chan struct{}

	mu sync.Mutex
}

// New creates a new speaker-backed engine. The speaker device itself is
// initialized lazily on the first successful load.
func New(logger *slog.Logger) *Engine {
	return &Engine{
		logger: logger,
		level:  1.0,
	}
}

// SetHandler registers the event callback. Must be called before any load;
// events emitted with no handler registered are dropped.
func (e *Engine) SetHandler(handler domain.EngineEventHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = handler
}

// SetSource stops any current playback and loads the MP3 at path. Emits
// loadstart immediately, then either loadedmetadata and canplay, or a single
// error event.
func (e *Engine) SetSource(path string) {
	e.emit(domain.EngineEvent{Kind: domain.EngineLoadStart, Source: path})

	e.mu.Lock()
	e.stopLocked()
	e.source = path
	e.mu.Unlock()
	speaker.Clear()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = domain.ErrFileNotFound
		}
		e.emitError(path, "load", err)
		return
	}

	streamer, format, err := mp3.Decode(file)
	if err != nil {
		_ = file.Close()
		e.emitError(path, "decode", err)
		return
	}

	e.mu.Lock()
	if e.source != path {
		// Superseded by a newer load while decoding.
		e.mu.Unlock()
		_ = streamer.Close()
		return
	}
	e.streamer = streamer
	e.format = format
	e.mu.Unlock()

	if err := e.initSpeaker(); err != nil {
		e.emitError(path, "output", err)
		return
	}

	e.emit(domain.EngineEvent{
		Kind:     domain.EngineLoadedMetadata,
		Source:   path,
		Duration: format.SampleRate.D(streamer.Len()),
	})
	e.emit(domain.EngineEvent{Kind: domain.EngineCanPlay, Source: path})
}

// Play starts the loaded source, or resumes it when paused. A play with no
// source loaded is dropped.
func (e *Engine) Play() {
	e.mu.Lock()
	if e.streamer == nil {
		e.mu.Unlock()
		return
	}
	source := e.source

	if e.ctrl != nil {
		ctrl := e.ctrl
		e.mu.Unlock()

		speaker.Lock()
		ctrl.Paused = false
		speaker.Unlock()
		e.emit(domain.EngineEvent{Kind: domain.EnginePlay, Source: source})
		return
	}

	resampled := beep.Resample(resampleQuality, e.format.SampleRate, baseSampleRate, e.streamer)
	e.ctrl = &beep.Ctrl{Streamer: resampled}
	e.volume = &effects.Volume{Streamer: e.ctrl, Base: 2}
	e.applyVolumeLocked()
	volume := e.volume

	stop := make(chan struct{})
	e.progress = stop
	e.mu.Unlock()

	speaker.Play(beep.Seq(volume, beep.Callback(func() {
		// Separate goroutine: the consumer typically reacts to ended by
		// loading the next track, which calls back into the speaker.
		go e.emit(domain.EngineEvent{Kind: domain.EngineEnded, Source: source})
	})))
	go e.progressLoop(source, stop)

	e.emit(domain.EngineEvent{Kind: domain.EnginePlay, Source: source})
}

// Pause pauses playback, keeping the position.
func (e *Engine) Pause() {
	e.mu.Lock()
	ctrl := e.ctrl
	source := e.source
	e.mu.Unlock()

	if ctrl == nil {
		return
	}

	speaker.Lock()
	ctrl.Paused = true
	speaker.Unlock()

	e.emit(domain.EngineEvent{
		Kind:     domain.EnginePause,
		Source:   source,
		Position: e.position(),
	})
}

// Seek jumps to the given position in the loaded source.
func (e *Engine) Seek(position time.Duration) {
	e.mu.Lock()
	streamer := e.streamer
	format := e.format
	source := e.source
	e.mu.Unlock()

	if streamer == nil {
		return
	}

	speaker.Lock()
	err := streamer.Seek(format.SampleRate.N(position))
	speaker.Unlock()

	if err != nil {
		e.logger.Warn("seek failed",
			slog.String("source", source),
			slog.Any("error", err))
		return
	}

	e.emit(domain.EngineEvent{
		Kind:     domain.EngineTimeUpdate,
		Source:   source,
		Position: position,
	})
}

// SetVolume sets the output level in [0, 1]. Zero is rendered as silence.
func (e *Engine) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.level = level
	e.applyVolumeLocked()
}

// SetMuted silences or restores the output without touching the level.
func (e *Engine) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = muted
	e.applyVolumeLocked()
}

// Close stops playback and releases the decoder.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.stopLocked()
	e.source = ""
	e.mu.Unlock()
	speaker.Clear()
	return nil
}

// initSpeaker opens the output device once, at the engine's base rate.
func (e *Engine) initSpeaker() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}
	if err := speaker.Init(baseSampleRate, baseSampleRate.N(time.Second/10)); err != nil {
		return err
	}
	e.initialized = true
	return nil
}

// applyVolumeLocked maps the linear level onto beep's exponential volume.
// Caller must hold the lock.
func (e *Engine) applyVolumeLocked() {
	if e.volume == nil {
		return
	}
	speaker.Lock()
	if e.muted || e.level <= 0 {
		e.volume.Silent = true
	} else {
		e.volume.Silent = false
		e.volume.Volume = math.Log2(e.level)
	}
	speaker.Unlock()
}

// stopLocked tears down the current source. Caller must hold the lock.
func (e *Engine) stopLocked() {
	if e.progress != nil {
		close(e.progress)
		e.progress = nil
	}
	if e.ctrl != nil {
		speaker.Lock()
		e.ctrl.Paused = true
		speaker.Unlock()
	}
	if e.streamer != nil {
		_ = e.streamer.Close()
		e.streamer = nil
	}
	e.ctrl = nil
	e.volume = nil
}

// position returns the current playback position of the loaded source.
func (e *Engine) position() time.Duration {
	e.mu.Lock()
	streamer := e.streamer
	format := e.format
	e.mu.Unlock()

	if streamer == nil {
		return 0
	}

	speaker.Lock()
	pos := streamer.Position()
	speaker.Unlock()
	return format.SampleRate.D(pos)
}

// progressLoop emits timeupdate events until the source is torn down.
func (e *Engine) progressLoop(source string, stop chan struct{}) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.mu.Lock()
			paused := e.ctrl == nil || e.ctrl.Paused
			stale := e.source != source || e.streamer == nil
			e.mu.Unlock()

			if stale {
				return
			}
			if paused {
				continue
			}
			e.emit(domain.EngineEvent{
				Kind:     domain.EngineTimeUpdate,
				Source:   source,
				Position: e.position(),
			})
		}
	}
}

func (e *Engine) emit(event domain.EngineEvent) {
	e.mu.Lock()
	handler := e.handler
	e.mu.Unlock()

	if handler != nil {
		handler(event)
	}
}

func (e *Engine) emitError(source, op string, err error) {
	e.emit(domain.EngineEvent{
		Kind:   domain.EngineError,
		Source: source,
		Err:    domain.NewPlaybackError(op, source, err),
	})
}

// Verify interface implementation
var _ ports.AudioEngine = (*Engine)(nil)
