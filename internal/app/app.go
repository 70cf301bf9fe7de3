// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	audiobeep "github.com/trackdeck/trackdeck/internal/adapter/audio/beep"
	"github.com/trackdeck/trackdeck/internal/adapter/audio/mock"
	"github.com/trackdeck/trackdeck/internal/adapter/eventbus"
	"github.com/trackdeck/trackdeck/internal/adapter/media"
	"github.com/trackdeck/trackdeck/internal/adapter/repository/kv"
	filestore "github.com/trackdeck/trackdeck/internal/adapter/store/file"
	"github.com/trackdeck/trackdeck/internal/logger"
	"github.com/trackdeck/trackdeck/internal/ports"
	"github.com/trackdeck/trackdeck/internal/service"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
type Application struct {
	logger *slog.Logger

	// Infrastructure
	eventBus    ports.EventBus
	audioEngine ports.AudioEngine
	store       ports.Store

	// Repositories
	trackRepo    ports.TrackRepository
	playlistRepo ports.PlaylistRepository
	recentRepo   ports.RecentRepository
	settingsRepo ports.SettingsRepository
	exporter     ports.Exporter

	// Services
	playerService   *service.PlayerService
	libraryService  *service.LibraryService
	playlistService *service.PlaylistService
	settingsService *service.SettingsService
}

// Config holds application configuration.
type Config struct {
	// DataDir is the directory holding the persisted JSON collections.
	// Empty selects a "trackdeck" directory under the user config dir.
	DataDir string

	// UseMockAudio selects the in-memory audio engine (for testing)
	UseMockAudio bool

	// LogLevel controls logging verbosity
	LogLevel slog.Level
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		LogLevel: loggerCfg.Level,
	}
}

// DefaultDataDir resolves the default data directory.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(base, "trackdeck"), nil
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	app := &Application{}

	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: "text",
	})

	dataDir := config.DataDir
	if dataDir == "" {
		resolved, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = resolved
	}

	app.logger.Debug("initializing application",
		slog.String("data_dir", dataDir))

	// Event bus
	app.eventBus = eventbus.NewSyncBus(
		app.logger.With(slog.String("component", "eventbus")))

	// Persistent store
	store, err := filestore.New(dataDir,
		app.logger.With(slog.String("component", "store")))
	if err != nil {
		return nil, fmt.Errorf("failed to open data dir: %w", err)
	}
	app.store = store

	// Audio engine
	if config.UseMockAudio {
		app.audioEngine = mock.NewEngine()
	} else {
		app.audioEngine = audiobeep.New(
			app.logger.With(slog.String("engine", "beep")))
	}

	// Repositories
	storeLogger := app.logger.With(slog.String("component", "repository"))
	app.trackRepo = kv.NewTrackRepository(app.store, storeLogger)
	app.playlistRepo = kv.NewPlaylistRepository(app.store, storeLogger)
	app.recentRepo = kv.NewRecentRepository(app.store, storeLogger)
	app.settingsRepo = kv.NewSettingsRepository(app.store, storeLogger)
	app.exporter = kv.NewExporter(app.store, storeLogger)

	// Services
	app.playerService = service.NewPlayerService(
		app.logger.With(slog.String("service", "player")),
		app.audioEngine,
		app.eventBus,
		app.recentRepo,
		app.settingsRepo,
	)

	app.libraryService = service.NewLibraryService(
		app.logger.With(slog.String("service", "library")),
		app.trackRepo,
		app.recentRepo,
		media.NewProber(app.logger.With(slog.String("component", "prober"))),
		app.eventBus,
	)

	app.playlistService = service.NewPlaylistService(
		app.logger.With(slog.String("service", "playlist")),
		app.playlistRepo,
		app.eventBus,
	)

	app.settingsService = service.NewSettingsService(
		app.logger.With(slog.String("service", "settings")),
		app.settingsRepo,
	)

	return app, nil
}

// Shutdown gracefully shuts down the application.
// This should be called via deferring in main.go.
func (a *Application) Shutdown() {
	a.logger.Debug("shutting down application")

	if a.playerService != nil {
		if err := a.playerService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown player service", slog.Any("error", err))
		}
	}
	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			a.logger.Warn("failed to close event bus", slog.Any("error", err))
		}
	}

	a.logger.Debug("application shutdown complete")
}

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// EventBus returns the event bus.
func (a *Application) EventBus() ports.EventBus { return a.eventBus }

// Player returns the playback service.
func (a *Application) Player() *service.PlayerService { return a.playerService }

// Library returns the library service.
func (a *Application) Library() *service.LibraryService { return a.libraryService }

// Playlists returns the playlist service.
func (a *Application) Playlists() *service.PlaylistService { return a.playlistService }

// Settings returns the settings service.
func (a *Application) Settings() *service.SettingsService { return a.settingsService }

// Exporter returns the snapshot exporter.
func (a *Application) Exporter() ports.Exporter { return a.exporter }
