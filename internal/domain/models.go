// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the trackdeck player.
package domain

import (
	"time"
)

// Track represents a single MP3 track in the library.
// This is the core domain model for individual audio files.
type Track struct {
	// ID is a unique identifier for the track (UUID), assigned at import and immutable
	ID string `json:"id"`

	// Title is the song title (from ID3 tags or the file name)
	Title string `json:"title"`

	// Artist is the performing artist name
	Artist string `json:"artist"`

	// Album is the album name
	Album string `json:"album"`

	// Duration is the total length of the track
	Duration time.Duration `json:"duration"`

	// Source is the URI or absolute file path the playback engine loads
	Source string `json:"source"`

	// Artwork is a URI or path to cover art (empty if none)
	Artwork string `json:"artwork,omitempty"`

	// AddedAt is when the track was imported into the library
	AddedAt time.Time `json:"addedAt"`
}

// TrackFields holds the user-editable metadata of a track.
// Empty fields are left unchanged by update operations.
type TrackFields struct {
	Title   string
	Artist  string
	Album   string
	Artwork string
}

// Playlist represents a named, ordered collection of track references.
// Membership is stored by track id, not by embedding; ids may dangle after a
// track is removed from the library and are filtered at read time.
type Playlist struct {
	// ID is a unique identifier for the playlist (UUID)
	ID string `json:"id"`

	// Name is the playlist name
	Name string `json:"name"`

	// Description is an optional free-form description
	Description string `json:"description"`

	// TrackIDs is the ordered list of member track ids (no duplicates)
	TrackIDs []string `json:"trackIds"`

	// CreatedAt is when the playlist was created
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is bumped on every membership or metadata change
	UpdatedAt time.Time `json:"updatedAt"`
}

// Contains reports whether the playlist references the given track id.
func (p *Playlist) Contains(trackID string) bool {
	for _, id := range p.TrackIDs {
		if id == trackID {
			return true
		}
	}
	return false
}

// PlaylistUpdate carries a partial playlist metadata update.
// Nil fields are left unchanged.
type PlaylistUpdate struct {
	Name        *string
	Description *string
}

// RecentlyPlayedCap is the maximum number of recently-played entries kept.
const RecentlyPlayedCap = 50

// RecentlyPlayedEntry is one entry in the recently-played log.
// Entries are ordered most-recent-first and deduplicated by track id.
type RecentlyPlayedEntry struct {
	// TrackID references a library track (may dangle after removal)
	TrackID string `json:"trackId"`

	// PlayedAt is when playback of the track last started
	PlayedAt time.Time `json:"playedAt"`
}

// RepeatMode defines how playback continues when a track ends.
type RepeatMode string

const (
	// RepeatOff plays the queue once and stops at the end
	RepeatOff RepeatMode = "off"

	// RepeatAll wraps around to the start of the queue
	RepeatAll RepeatMode = "all"

	// RepeatOne replays the current track
	RepeatOne RepeatMode = "one"
)

// Next returns the mode that follows in the cycle off -> all -> one -> off.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// Valid reports whether m is one of the known repeat modes.
func (m RepeatMode) Valid() bool {
	return m == RepeatOff || m == RepeatAll || m == RepeatOne
}

// Settings contain persisted user settings.
type Settings struct {
	// Volume is the saved volume level (0.0 to 1.0)
	Volume float64 `json:"volume"`

	// Shuffle indicates if shuffle mode is enabled
	Shuffle bool `json:"shuffle"`

	// Repeat is the saved repeat mode
	Repeat RepeatMode `json:"repeat"`

	// Theme is the UI theme (light, dark)
	Theme string `json:"theme"`
}

// DefaultSettings returns the settings used when nothing has been persisted.
func DefaultSettings() Settings {
	return Settings{
		Volume:  1.0,
		Shuffle: false,
		Repeat:  RepeatOff,
		Theme:   "light",
	}
}

// PlaybackState is a snapshot of the player state machine.
// It is owned exclusively by the player service; readers receive copies and
// must not mutate playback through them.
type PlaybackState struct {
	// CurrentTrack is the track currently loaded (nil if idle)
	CurrentTrack *Track

	// Queue is the current playback queue
	Queue []Track

	// CurrentIndex is the index of CurrentTrack in Queue (-1 if none)
	CurrentIndex int

	// IsPlaying indicates whether the engine is producing output
	IsPlaying bool

	// IsLoading is true between source assignment and the engine's canplay
	IsLoading bool

	// CurrentTime is the playback position within the current track
	CurrentTime time.Duration

	// Duration is the current track length as reported by the engine
	// (zero until loadedmetadata arrives)
	Duration time.Duration

	// Volume is the volume level (0.0 to 1.0)
	Volume float64

	// IsMuted indicates if output is muted at the engine
	IsMuted bool

	// Shuffle indicates if shuffle mode is enabled
	Shuffle bool

	// Repeat is the active repeat mode
	Repeat RepeatMode

	// Err holds the playback error for the current track ("" if none).
	// An errored track stays errored until the next Load.
	Err string
}

// Status describes the coarse state machine position.
type Status int

const (
	// StatusIdle indicates no track is loaded
	StatusIdle Status = iota

	// StatusLoading indicates a source is assigned and not yet playable
	StatusLoading

	// StatusPlaying indicates active playback
	StatusPlaying

	// StatusPaused indicates a loaded, paused track
	StatusPaused

	// StatusError indicates the current track failed to load or play
	StatusError
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Status derives the coarse state from the snapshot fields.
func (s PlaybackState) Status() Status {
	switch {
	case s.CurrentTrack == nil:
		return StatusIdle
	case s.Err != "":
		return StatusError
	case s.IsLoading:
		return StatusLoading
	case s.IsPlaying:
		return StatusPlaying
	default:
		return StatusPaused
	}
}

// ImportProgress reports the progress of a batch import.
type ImportProgress struct {
	// CurrentFile is the file just processed
	CurrentFile string

	// Processed is the number of files handled so far
	Processed int

	// Total is the number of files in the batch
	Total int

	// Imported is the number of tracks successfully added
	Imported int
}

// Fraction returns completion as a value in [0, 1], or 0 if the total is unknown.
func (p ImportProgress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Processed) / float64(p.Total)
}

// Snapshot is a full export of the persisted collections, used for
// backup and restore.
type Snapshot struct {
	Tracks         []Track               `json:"tracks"`
	Playlists      []Playlist            `json:"playlists"`
	RecentlyPlayed []RecentlyPlayedEntry `json:"recentlyPlayed"`
	Settings       Settings              `json:"settings"`
	ExportedAt     time.Time             `json:"exportedAt"`
}
