package service

import (
	"log/slog"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// Themes recognized by SetTheme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// SettingsService exposes the persisted user settings. Playback-owned fields
// (volume, shuffle, repeat) are written by the player service; this service
// owns the rest.
type SettingsService struct {
	logger   *slog.Logger
	settings ports.SettingsRepository
}

// NewSettingsService creates a new settings service.
func NewSettingsService(logger *slog.Logger, settings ports.SettingsRepository) *SettingsService {
	return &SettingsService{logger: logger, settings: settings}
}

// Get returns the current settings, falling back to defaults when nothing
// has been persisted.
func (s *SettingsService) Get() domain.Settings {
	return s.settings.Load()
}

// SetTheme switches the UI theme and persists it.
func (s *SettingsService) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return domain.NewValidationError("theme", theme, "theme must be light or dark")
	}

	saved := s.settings.Load()
	saved.Theme = theme
	s.settings.Save(saved)

	s.logger.Debug("theme changed", slog.String("theme", theme))
	return nil
}
