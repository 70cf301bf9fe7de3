// Package service provides the business logic of the trackdeck player.
package service

import (
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// previousRestartThreshold is the position past which Previous restarts the
// current track instead of moving back in the queue.
const previousRestartThreshold = 3 * time.Second

// PlayerService is the playback state machine. It owns the current track, the
// queue, and all transient playback state, and it is the only component that
// commands the audio engine.
//
// Engine failures never propagate to callers; they are captured into the
// state's Err field and published as TrackError events. All operations are
// thread-safe via sync.Mutex; the engine event handler runs under the same
// lock, and no engine command is issued while the lock is held.
type PlayerService struct {
	// Dependencies (injected)
	logger   *slog.Logger
	engine   ports.AudioEngine
	bus      ports.EventBus
	recent   ports.RecentRepository
	settings ports.SettingsRepository

	// State
	current  *domain.Track
	queue    []domain.Track
	index    int
	playing  bool
	loading  bool
	position time.Duration
	duration time.Duration
	volume   float64
	muted    bool
	shuffle  bool
	repeat   domain.RepeatMode
	errMsg   string

	mu sync.Mutex
}

// NewPlayerService creates a new player service, restores persisted settings,
// and binds itself to the engine's event stream.
func NewPlayerService(
	logger *slog.Logger,
	engine ports.AudioEngine,
	bus ports.EventBus,
	recent ports.RecentRepository,
	settings ports.SettingsRepository,
) *PlayerService {
	saved := settings.Load()

	s := &PlayerService{
		logger:   logger,
		engine:   engine,
		bus:      bus,
		recent:   recent,
		settings: settings,
		index:    -1,
		volume:   clampVolume(saved.Volume),
		shuffle:  saved.Shuffle,
		repeat:   saved.Repeat,
	}
	s.muted = s.volume == 0

	engine.SetHandler(s.handleEngineEvent)
	engine.SetVolume(s.volume)
	engine.SetMuted(s.muted)

	logger.Debug("player service initialized",
		slog.Float64("volume", s.volume),
		slog.Bool("shuffle", s.shuffle),
		slog.String("repeat", string(s.repeat)))

	return s
}

// Load makes track the current track and starts loading it. A non-nil queue
// replaces the playback queue, with index as the track's position in it; a
// nil queue keeps the existing one. Transient state is reset (position and
// duration to zero, error cleared) and the track is recorded in the
// recently-played log. A Load while a previous load is in flight supersedes
// it; pending events of the prior source are discarded by the event bridge.
func (s *PlayerService) Load(track domain.Track, queue []domain.Track, index int) {
	s.mu.Lock()

	queueReplaced := queue != nil
	if queueReplaced {
		s.queue = slices.Clone(queue)
		if index < 0 || index >= len(s.queue) {
			index = 0
		}
		s.index = index
	} else if index >= 0 && index < len(s.queue) {
		s.index = index
	}

	t := track
	s.current = &t
	s.position = 0
	s.duration = 0
	s.errMsg = ""
	s.loading = true
	s.playing = false
	idx := s.index
	var queueCopy []domain.Track
	if queueReplaced {
		queueCopy = slices.Clone(s.queue)
	}
	s.mu.Unlock()

	s.logger.Debug("loading track",
		slog.String("track_id", track.ID),
		slog.String("source", track.Source))

	s.engine.SetSource(track.Source)
	s.engine.Play()

	s.recent.Record(track.ID)

	if queueReplaced {
		s.bus.Publish(domain.NewQueueChangedEvent(queueCopy, idx))
	}
	s.bus.Publish(domain.NewTrackLoadedEvent(track, idx))
}

// Play starts or resumes playback of the current track. Playing an errored
// track is a no-op until the next Load.
func (s *PlayerService) Play() error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return domain.ErrNoTrackLoaded
	}
	if s.errMsg != "" {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.engine.Play()
	return nil
}

// Pause pauses playback of the current track.
func (s *PlayerService) Pause() error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return domain.ErrNoTrackLoaded
	}
	s.mu.Unlock()

	s.engine.Pause()
	return nil
}

// TogglePlay pauses when playing and plays when paused.
func (s *PlayerService) TogglePlay() error {
	s.mu.Lock()
	playing := s.playing
	s.mu.Unlock()

	if playing {
		return s.Pause()
	}
	return s.Play()
}

// Seek jumps to the given position, clamped to [0, duration]. The position is
// updated optimistically; the engine's own timeupdate events remain the
// authority and overwrite it if they disagree.
func (s *PlayerService) Seek(position time.Duration) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return domain.ErrNoTrackLoaded
	}
	if position < 0 {
		position = 0
	}
	if position > s.duration {
		position = s.duration
	}
	s.position = position
	s.mu.Unlock()

	s.engine.Seek(position)
	return nil
}

// SetVolume sets the volume, clamped to [0, 1]. The muted flag becomes true
// exactly when the volume is zero. The volume is persisted best-effort.
func (s *PlayerService) SetVolume(volume float64) {
	volume = clampVolume(volume)

	s.mu.Lock()
	s.volume = volume
	s.muted = volume == 0
	muted := s.muted
	s.mu.Unlock()

	s.engine.SetVolume(volume)
	s.engine.SetMuted(muted)

	s.persistSettings()
	s.bus.Publish(domain.NewVolumeChangedEvent(volume))
}

// ToggleMute flips the engine-level mute flag. The stored volume is not
// altered, so unmuting restores the prior level (a volume of zero stays zero
// until explicitly changed).
func (s *PlayerService) ToggleMute() {
	s.mu.Lock()
	s.muted = !s.muted
	muted := s.muted
	s.mu.Unlock()

	s.engine.SetMuted(muted)
	s.bus.Publish(domain.NewMuteToggledEvent(muted))
}

// Next advances playback. With repeat-one the current track replays from the
// start; with shuffle a uniformly random queue index is chosen (repeats
// allowed); otherwise the index increments, wrapping to zero under repeat-all
// and staying put (no-op) at the end of the queue otherwise.
func (s *PlayerService) Next() error {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return domain.ErrQueueEmpty
	}
	target := s.resolveNext()
	s.mu.Unlock()

	if target < 0 {
		return nil
	}
	s.playAt(target)
	return nil
}

// Previous moves playback backwards. Past the restart threshold it restarts
// the current track from zero regardless of queue position; otherwise it
// mirrors Next in the decrement direction, wrapping to the last index under
// repeat-all and clamping to index zero otherwise.
func (s *PlayerService) Previous() error {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return domain.ErrQueueEmpty
	}

	if s.current != nil && s.position > previousRestartThreshold {
		s.position = 0
		s.mu.Unlock()
		s.engine.Seek(0)
		return nil
	}

	target := s.resolvePrevious()
	s.mu.Unlock()

	if target < 0 {
		return nil
	}
	s.playAt(target)
	return nil
}

// ToggleShuffle flips shuffle mode. The current playback position is
// unaffected.
func (s *PlayerService) ToggleShuffle() {
	s.mu.Lock()
	s.shuffle = !s.shuffle
	enabled := s.shuffle
	s.mu.Unlock()

	s.persistSettings()
	s.bus.Publish(domain.NewShuffleToggledEvent(enabled))
}

// CycleRepeat advances the repeat mode through off, all, one.
func (s *PlayerService) CycleRepeat() domain.RepeatMode {
	s.mu.Lock()
	s.repeat = s.repeat.Next()
	mode := s.repeat
	s.mu.Unlock()

	s.persistSettings()
	s.bus.Publish(domain.NewRepeatChangedEvent(mode))
	return mode
}

// State returns a snapshot of the playback state. The snapshot is a copy;
// mutating it has no effect on playback.
func (s *PlayerService) State() domain.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.PlaybackState{
		Queue:        slices.Clone(s.queue),
		CurrentIndex: s.index,
		IsPlaying:    s.playing,
		IsLoading:    s.loading,
		CurrentTime:  s.position,
		Duration:     s.duration,
		Volume:       s.volume,
		IsMuted:      s.muted,
		Shuffle:      s.shuffle,
		Repeat:       s.repeat,
		Err:          s.errMsg,
	}
	if s.current != nil {
		track := *s.current
		state.CurrentTrack = &track
	}
	return state
}

// Shutdown releases the engine and persists the settings.
func (s *PlayerService) Shutdown() error {
	s.persistSettings()
	return s.engine.Close()
}

// resolveNext returns the queue index to play after the current track, or -1
// for "stay where you are". Caller must hold the lock.
func (s *PlayerService) resolveNext() int {
	n := len(s.queue)
	if n == 0 {
		return -1
	}
	if s.index < 0 {
		return 0
	}
	if s.repeat == domain.RepeatOne {
		return s.index
	}
	if s.shuffle {
		return rand.Intn(n)
	}
	next := s.index + 1
	if next >= n {
		if s.repeat == domain.RepeatAll {
			return 0
		}
		return -1
	}
	return next
}

// resolvePrevious mirrors resolveNext in the decrement direction.
// Caller must hold the lock.
func (s *PlayerService) resolvePrevious() int {
	n := len(s.queue)
	if n == 0 {
		return -1
	}
	if s.index < 0 {
		return 0
	}
	if s.repeat == domain.RepeatOne {
		return s.index
	}
	if s.shuffle {
		return rand.Intn(n)
	}
	prev := s.index - 1
	if prev < 0 {
		if s.repeat == domain.RepeatAll {
			return n - 1
		}
		return 0
	}
	return prev
}

// playAt loads and plays the queue track at the given index.
// Caller must not hold the lock.
func (s *PlayerService) playAt(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.queue) {
		s.mu.Unlock()
		return
	}
	track := s.queue[index]
	s.mu.Unlock()

	s.Load(track, nil, index)
}

// handleEngineEvent is the bridge between the engine's callback stream and
// the state machine. Events whose source does not match the current track are
// stale (emitted for a superseded load) and are discarded.
func (s *PlayerService) handleEngineEvent(ev domain.EngineEvent) {
	s.mu.Lock()

	if s.current == nil || ev.Source != s.current.Source {
		s.mu.Unlock()
		return
	}

	var publish []domain.Event
	finished := false
	track := *s.current

	switch ev.Kind {
	case domain.EngineLoadStart:
		s.loading = true

	case domain.EngineLoadedMetadata:
		s.duration = ev.Duration

	case domain.EngineCanPlay:
		s.loading = false

	case domain.EngineTimeUpdate:
		s.position = ev.Position
		publish = append(publish, domain.NewTrackProgressEvent(ev.Position, s.duration))

	case domain.EnginePlay:
		s.playing = true
		s.loading = false
		publish = append(publish, domain.NewPlaybackStartedEvent(track))

	case domain.EnginePause:
		s.playing = false
		publish = append(publish, domain.NewPlaybackPausedEvent(track, s.position))

	case domain.EngineEnded:
		s.playing = false
		finished = true
		publish = append(publish, domain.NewTrackCompletedEvent(track))

	case domain.EngineError:
		s.errMsg = errMessage(ev.Err)
		s.loading = false
		s.playing = false
		publish = append(publish, domain.NewTrackErrorEvent(track, ev.Err))
		s.logger.Warn("playback error",
			slog.String("track_id", track.ID),
			slog.Any("error", ev.Err))
	}

	var target int
	if finished {
		target = s.resolveNext()
	}
	s.mu.Unlock()

	for _, event := range publish {
		s.bus.Publish(event)
	}

	if finished && target >= 0 {
		s.playAt(target)
	}
}

// persistSettings writes volume and mode settings back, preserving fields
// this service does not own (theme). Best effort.
func (s *PlayerService) persistSettings() {
	s.mu.Lock()
	volume := s.volume
	shuffle := s.shuffle
	repeat := s.repeat
	s.mu.Unlock()

	saved := s.settings.Load()
	saved.Volume = volume
	saved.Shuffle = shuffle
	saved.Repeat = repeat
	s.settings.Save(saved)
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func errMessage(err error) string {
	if err == nil {
		return "failed to play audio"
	}
	return err.Error()
}

// Verify that PlayerService implements the expected interface patterns
var _ interface {
	Load(domain.Track, []domain.Track, int)
	Play() error
	Pause() error
	TogglePlay() error
	Seek(time.Duration) error
	SetVolume(float64)
	ToggleMute()
	Next() error
	Previous() error
	ToggleShuffle()
	CycleRepeat() domain.RepeatMode
	State() domain.PlaybackState
	Shutdown() error
} = (*PlayerService)(nil)
