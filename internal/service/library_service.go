package service

import (
	"sort"
	"strings"

	"log/slog"

	"github.com/samber/lo"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// SortKey selects the field library listings are ordered by.
type SortKey string

const (
	SortByTitle    SortKey = "title"
	SortByArtist   SortKey = "artist"
	SortByDuration SortKey = "duration"
)

// LibraryService manages the track library: importing files, metadata
// updates, removal with playlist cascade, search, and the recently-played
// view.
type LibraryService struct {
	logger *slog.Logger
	tracks ports.TrackRepository
	recent ports.RecentRepository
	prober ports.MetadataProber
	bus    ports.EventBus
}

// NewLibraryService creates a new library service.
func NewLibraryService(
	logger *slog.Logger,
	tracks ports.TrackRepository,
	recent ports.RecentRepository,
	prober ports.MetadataProber,
	bus ports.EventBus,
) *LibraryService {
	return &LibraryService{
		logger: logger,
		tracks: tracks,
		recent: recent,
		prober: prober,
		bus:    bus,
	}
}

// Import validates and probes the file at path and adds it to the library.
// Non-MP3 files are rejected with domain.ErrNotMP3.
func (s *LibraryService) Import(path string) (*domain.Track, error) {
	probed, err := s.prober.Probe(path)
	if err != nil {
		s.logger.Warn("import rejected",
			slog.String("path", path), slog.Any("error", err))
		return nil, err
	}

	track := s.tracks.Add(*probed)
	s.logger.Info("track imported",
		slog.String("track_id", track.ID),
		slog.String("title", track.Title))

	s.bus.Publish(domain.NewLibraryChangedEvent())
	return &track, nil
}

// ImportAll imports a batch of files sequentially, publishing a progress
// event after each file. Files that fail validation or probing are skipped;
// one bad file never aborts the batch. Returns the tracks actually added.
func (s *LibraryService) ImportAll(paths []string) []domain.Track {
	s.bus.Publish(domain.NewImportStartedEvent(len(paths)))

	imported := make([]domain.Track, 0, len(paths))
	for i, path := range paths {
		probed, err := s.prober.Probe(path)
		if err != nil {
			s.logger.Warn("skipping file",
				slog.String("path", path), slog.Any("error", err))
		} else {
			imported = append(imported, s.tracks.Add(*probed))
		}

		s.bus.Publish(domain.NewImportProgressEvent(domain.ImportProgress{
			CurrentFile: path,
			Processed:   i + 1,
			Total:       len(paths),
			Imported:    len(imported),
		}))
	}

	if len(imported) > 0 {
		s.bus.Publish(domain.NewLibraryChangedEvent())
	}
	s.bus.Publish(domain.NewImportCompletedEvent(imported))

	s.logger.Info("import finished",
		slog.Int("total", len(paths)),
		slog.Int("imported", len(imported)))
	return imported
}

// Remove deletes a track from the library. Playlist references to it are
// stripped and the recently-played log keeps its entry, which drops out of
// the resolved view.
func (s *LibraryService) Remove(id string) {
	s.tracks.Remove(id)
	s.bus.Publish(domain.NewLibraryChangedEvent())
}

// UpdateMetadata merges non-empty fields into a track's metadata.
func (s *LibraryService) UpdateMetadata(id string, fields domain.TrackFields) (*domain.Track, error) {
	track, err := s.tracks.Update(id, fields)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(domain.NewLibraryChangedEvent())
	return track, nil
}

// Get retrieves a track by id.
func (s *LibraryService) Get(id string) (*domain.Track, error) {
	return s.tracks.Get(id)
}

// List returns all library tracks in insertion order.
func (s *LibraryService) List() []domain.Track {
	return s.tracks.List()
}

// Search returns the tracks whose title or artist contains the query,
// case-insensitively. An empty query returns the whole library.
func (s *LibraryService) Search(query string) []domain.Track {
	tracks := s.tracks.List()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return tracks
	}

	return lo.Filter(tracks, func(t domain.Track, _ int) bool {
		return strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Artist), query)
	})
}

// Sorted returns all library tracks ordered by the given key. Title and
// artist compare case-insensitively; an unknown key falls back to insertion
// order.
func (s *LibraryService) Sorted(key SortKey) []domain.Track {
	tracks := s.tracks.List()

	switch key {
	case SortByTitle:
		sort.SliceStable(tracks, func(i, j int) bool {
			return strings.ToLower(tracks[i].Title) < strings.ToLower(tracks[j].Title)
		})
	case SortByArtist:
		sort.SliceStable(tracks, func(i, j int) bool {
			return strings.ToLower(tracks[i].Artist) < strings.ToLower(tracks[j].Artist)
		})
	case SortByDuration:
		sort.SliceStable(tracks, func(i, j int) bool {
			return tracks[i].Duration < tracks[j].Duration
		})
	}
	return tracks
}

// RecentlyPlayed returns the recently-played tracks, most recent first.
// Entries for removed tracks are dropped.
func (s *LibraryService) RecentlyPlayed() []domain.Track {
	return s.recent.ListTracks()
}

// RecentlyPlayedLog returns the raw log entries, most recent first.
func (s *LibraryService) RecentlyPlayedLog() []domain.RecentlyPlayedEntry {
	return s.recent.List()
}

// ClearRecentlyPlayed empties the recently-played log.
func (s *LibraryService) ClearRecentlyPlayed() {
	s.recent.Clear()
}
