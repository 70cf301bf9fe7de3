package kv

import (
	"log/slog"
	"sync"
	"time"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// Exporter snapshots and restores all persisted collections as one document,
// for backup and restore.
//
// Thread-safe: all operations protected by sync.Mutex. A restore is still
// four independent writes; as everywhere else, there is no cross-key
// transaction and a partial restore is re-reconciled at read time.
type Exporter struct {
	store  ports.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewExporter creates a new exporter over the given store.
func NewExporter(store ports.Store, logger *slog.Logger) *Exporter {
	return &Exporter{store: store, logger: logger}
}

// Export returns a snapshot of tracks, playlists, recently-played,
// and settings.
func (e *Exporter) Export() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	settings := domain.DefaultSettings()
	if err := e.store.Read(ports.KeySettings, &settings); err != nil {
		settings = domain.DefaultSettings()
	}

	return domain.Snapshot{
		Tracks:         readCollection[domain.Track](e.store, e.logger, ports.KeyTracks),
		Playlists:      readCollection[domain.Playlist](e.store, e.logger, ports.KeyPlaylists),
		RecentlyPlayed: readCollection[domain.RecentlyPlayedEntry](e.store, e.logger, ports.KeyRecentlyPlayed),
		Settings:       settings,
		ExportedAt:     time.Now(),
	}
}

// Import replaces the collections present in the snapshot. Empty collections
// in the snapshot are treated as absent and leave the stored data untouched,
// so a partial snapshot merges instead of wiping.
func (e *Exporter) Import(snapshot domain.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(snapshot.Tracks) > 0 {
		writeCollection(e.store, e.logger, ports.KeyTracks, snapshot.Tracks)
	}
	if len(snapshot.Playlists) > 0 {
		writeCollection(e.store, e.logger, ports.KeyPlaylists, snapshot.Playlists)
	}
	if len(snapshot.RecentlyPlayed) > 0 {
		writeCollection(e.store, e.logger, ports.KeyRecentlyPlayed, snapshot.RecentlyPlayed)
	}
	if snapshot.Settings != (domain.Settings{}) {
		if err := e.store.Write(ports.KeySettings, snapshot.Settings); err != nil && e.logger != nil {
			e.logger.Warn("failed to restore settings", slog.Any("error", err))
		}
	}
}

// Verify interface implementation
var _ ports.Exporter = (*Exporter)(nil)
