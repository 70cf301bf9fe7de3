// Package domain defines events for the event-driven architecture.
// Bus events decouple the services from their observers; engine events carry
// the playback engine's callback stream into the player state machine.
package domain

import (
	"time"
)

// Event is the base interface for all events published on the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible bus events in the system.
const (
	// Playback events
	EventTrackLoaded     EventType = "track.loaded"
	EventPlaybackStarted EventType = "playback.started"
	EventPlaybackPaused  EventType = "playback.paused"
	EventTrackCompleted  EventType = "track.completed"
	EventTrackProgress   EventType = "track.progress"
	EventTrackError      EventType = "track.error"

	// Volume and mode events
	EventVolumeChanged  EventType = "volume.changed"
	EventMuteToggled    EventType = "mute.toggled"
	EventShuffleToggled EventType = "shuffle.toggled"
	EventRepeatChanged  EventType = "repeat.changed"

	// Queue events
	EventQueueChanged EventType = "queue.changed"

	// Library and playlist events
	EventLibraryChanged  EventType = "library.changed"
	EventPlaylistChanged EventType = "playlist.changed"

	// Import events
	EventImportStarted   EventType = "import.started"
	EventImportProgress  EventType = "import.progress"
	EventImportCompleted EventType = "import.completed"
)

// EventHandler is a function that handles bus events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// TrackLoadedEvent is published when a track becomes the current track.
type TrackLoadedEvent struct {
	baseEvent
	Track Track
	Index int // Queue index
}

// Type returns the event type.
func (e TrackLoadedEvent) Type() EventType { return EventTrackLoaded }

// NewTrackLoadedEvent creates a new TrackLoadedEvent.
func NewTrackLoadedEvent(track Track, index int) TrackLoadedEvent {
	return TrackLoadedEvent{baseEvent: newBaseEvent(), Track: track, Index: index}
}

// PlaybackStartedEvent is published when playback starts or resumes.
type PlaybackStartedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e PlaybackStartedEvent) Type() EventType { return EventPlaybackStarted }

// NewPlaybackStartedEvent creates a new PlaybackStartedEvent.
func NewPlaybackStartedEvent(track Track) PlaybackStartedEvent {
	return PlaybackStartedEvent{baseEvent: newBaseEvent(), Track: track}
}

// PlaybackPausedEvent is published when playback pauses.
type PlaybackPausedEvent struct {
	baseEvent
	Track    Track
	Position time.Duration
}

// Type returns the event type.
func (e PlaybackPausedEvent) Type() EventType { return EventPlaybackPaused }

// NewPlaybackPausedEvent creates a new PlaybackPausedEvent.
func NewPlaybackPausedEvent(track Track, position time.Duration) PlaybackPausedEvent {
	return PlaybackPausedEvent{baseEvent: newBaseEvent(), Track: track, Position: position}
}

// TrackCompletedEvent is published when a track finishes playing naturally.
type TrackCompletedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackCompletedEvent) Type() EventType { return EventTrackCompleted }

// NewTrackCompletedEvent creates a new TrackCompletedEvent.
func NewTrackCompletedEvent(track Track) TrackCompletedEvent {
	return TrackCompletedEvent{baseEvent: newBaseEvent(), Track: track}
}

// TrackProgressEvent is published as the playback position advances.
type TrackProgressEvent struct {
	baseEvent
	Position time.Duration
	Duration time.Duration
}

// Type returns the event type.
func (e TrackProgressEvent) Type() EventType { return EventTrackProgress }

// NewTrackProgressEvent creates a new TrackProgressEvent.
func NewTrackProgressEvent(position, duration time.Duration) TrackProgressEvent {
	return TrackProgressEvent{baseEvent: newBaseEvent(), Position: position, Duration: duration}
}

// TrackErrorEvent is published when the engine fails to load or play a track.
type TrackErrorEvent struct {
	baseEvent
	Track Track
	Err   error
}

// Type returns the event type.
func (e TrackErrorEvent) Type() EventType { return EventTrackError }

// NewTrackErrorEvent creates a new TrackErrorEvent.
func NewTrackErrorEvent(track Track, err error) TrackErrorEvent {
	return TrackErrorEvent{baseEvent: newBaseEvent(), Track: track, Err: err}
}

// VolumeChangedEvent is published when the volume changes.
type VolumeChangedEvent struct {
	baseEvent
	Volume float64 // 0.0 to 1.0
}

// Type returns the event type.
func (e VolumeChangedEvent) Type() EventType { return EventVolumeChanged }

// NewVolumeChangedEvent creates a new VolumeChangedEvent.
func NewVolumeChangedEvent(volume float64) VolumeChangedEvent {
	return VolumeChangedEvent{baseEvent: newBaseEvent(), Volume: volume}
}

// MuteToggledEvent is published when mute is toggled.
type MuteToggledEvent struct {
	baseEvent
	Muted bool
}

// Type returns the event type.
func (e MuteToggledEvent) Type() EventType { return EventMuteToggled }

// NewMuteToggledEvent creates a new MuteToggledEvent.
func NewMuteToggledEvent(muted bool) MuteToggledEvent {
	return MuteToggledEvent{baseEvent: newBaseEvent(), Muted: muted}
}

// ShuffleToggledEvent is published when shuffle mode is toggled.
type ShuffleToggledEvent struct {
	baseEvent
	Enabled bool
}

// Type returns the event type.
func (e ShuffleToggledEvent) Type() EventType { return EventShuffleToggled }

// NewShuffleToggledEvent creates a new ShuffleToggledEvent.
func NewShuffleToggledEvent(enabled bool) ShuffleToggledEvent {
	return ShuffleToggledEvent{baseEvent: newBaseEvent(), Enabled: enabled}
}

// RepeatChangedEvent is published when the repeat mode cycles.
type RepeatChangedEvent struct {
	baseEvent
	Mode RepeatMode
}

// Type returns the event type.
func (e RepeatChangedEvent) Type() EventType { return EventRepeatChanged }

// NewRepeatChangedEvent creates a new RepeatChangedEvent.
func NewRepeatChangedEvent(mode RepeatMode) RepeatChangedEvent {
	return RepeatChangedEvent{baseEvent: newBaseEvent(), Mode: mode}
}

// QueueChangedEvent is published when the playback queue is replaced.
type QueueChangedEvent struct {
	baseEvent
	Queue []Track
	Index int // Current track index
}

// Type returns the event type.
func (e QueueChangedEvent) Type() EventType { return EventQueueChanged }

// NewQueueChangedEvent creates a new QueueChangedEvent.
func NewQueueChangedEvent(queue []Track, index int) QueueChangedEvent {
	return QueueChangedEvent{baseEvent: newBaseEvent(), Queue: queue, Index: index}
}

// LibraryChangedEvent is published when tracks are added to or removed
// from the library.
type LibraryChangedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e LibraryChangedEvent) Type() EventType { return EventLibraryChanged }

// NewLibraryChangedEvent creates a new LibraryChangedEvent.
func NewLibraryChangedEvent() LibraryChangedEvent {
	return LibraryChangedEvent{baseEvent: newBaseEvent()}
}

// PlaylistChangedEvent is published when a playlist is created, updated,
// or deleted.
type PlaylistChangedEvent struct {
	baseEvent
	PlaylistID string
}

// Type returns the event type.
func (e PlaylistChangedEvent) Type() EventType { return EventPlaylistChanged }

// NewPlaylistChangedEvent creates a new PlaylistChangedEvent.
func NewPlaylistChangedEvent(playlistID string) PlaylistChangedEvent {
	return PlaylistChangedEvent{baseEvent: newBaseEvent(), PlaylistID: playlistID}
}

// ImportStartedEvent is published when a batch import begins.
type ImportStartedEvent struct {
	baseEvent
	Total int
}

// Type returns the event type.
func (e ImportStartedEvent) Type() EventType { return EventImportStarted }

// NewImportStartedEvent creates a new ImportStartedEvent.
func NewImportStartedEvent(total int) ImportStartedEvent {
	return ImportStartedEvent{baseEvent: newBaseEvent(), Total: total}
}

// ImportProgressEvent is published after each file of a batch import.
type ImportProgressEvent struct {
	baseEvent
	Progress ImportProgress
}

// Type returns the event type.
func (e ImportProgressEvent) Type() EventType { return EventImportProgress }

// NewImportProgressEvent creates a new ImportProgressEvent.
func NewImportProgressEvent(progress ImportProgress) ImportProgressEvent {
	return ImportProgressEvent{baseEvent: newBaseEvent(), Progress: progress}
}

// ImportCompletedEvent is published when a batch import finishes.
type ImportCompletedEvent struct {
	baseEvent
	Imported []Track
}

// Type returns the event type.
func (e ImportCompletedEvent) Type() EventType { return EventImportCompleted }

// NewImportCompletedEvent creates a new ImportCompletedEvent.
func NewImportCompletedEvent(imported []Track) ImportCompletedEvent {
	return ImportCompletedEvent{baseEvent: newBaseEvent(), Imported: imported}
}

// EngineEventKind identifies a playback engine callback event.
// The vocabulary mirrors a media element: loadstart precedes
// loadedmetadata/canplay, which precede timeupdate, which precede
// ended or error. Events for a given source arrive in emission order.
type EngineEventKind string

const (
	EngineLoadStart      EngineEventKind = "loadstart"
	EngineLoadedMetadata EngineEventKind = "loadedmetadata"
	EngineCanPlay        EngineEventKind = "canplay"
	EngineTimeUpdate     EngineEventKind = "timeupdate"
	EnginePlay           EngineEventKind = "play"
	EnginePause          EngineEventKind = "pause"
	EngineEnded          EngineEventKind = "ended"
	EngineError          EngineEventKind = "error"
)

// EngineEvent is one callback event from the playback engine.
// Source identifies the track the event belongs to; consumers discard events
// whose source no longer matches the current track (stale generation).
type EngineEvent struct {
	Kind     EngineEventKind
	Source   string
	Position time.Duration // set on timeupdate
	Duration time.Duration // set on loadedmetadata
	Err      error         // set on error
}

// EngineEventHandler receives engine events. The handler is owned by the
// player service for the lifetime of the engine binding.
type EngineEventHandler func(event EngineEvent)
