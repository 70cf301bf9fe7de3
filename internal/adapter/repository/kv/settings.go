package kv

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// SettingsRepository persists user settings under ports.KeySettings.
//
// Thread-safe: all operations protected by sync.Mutex.
type SettingsRepository struct {
	store  ports.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(store ports.Store, logger *slog.Logger) *SettingsRepository {
	return &SettingsRepository{store: store, logger: logger}
}

// Load returns the stored settings. Absence or an unreadable document yields
// domain.DefaultSettings(), never an error.
func (r *SettingsRepository) Load() domain.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings := domain.DefaultSettings()
	if err := r.store.Read(ports.KeySettings, &settings); err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) && r.logger != nil {
			r.logger.Warn("failed to read settings, using defaults", slog.Any("error", err))
		}
		return domain.DefaultSettings()
	}
	if !settings.Repeat.Valid() {
		settings.Repeat = domain.RepeatOff
	}
	return settings
}

// Save persists the settings, logging and discarding the change on failure.
func (r *SettingsRepository) Save(settings domain.Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Write(ports.KeySettings, settings); err != nil && r.logger != nil {
		r.logger.Warn("failed to persist settings", slog.Any("error", err))
	}
}

// Verify interface implementation
var _ ports.SettingsRepository = (*SettingsRepository)(nil)
