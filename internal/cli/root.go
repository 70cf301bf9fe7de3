// Package cli implements the trackdeck command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/trackdeck/trackdeck/internal/app"
)

var (
	flagDataDir   string
	flagMockAudio bool

	application *app.Application
)

var rootCmd = &cobra.Command{
	Use:   "trackdeck",
	Short: "trackdeck is a local MP3 library and player",
	Long: `trackdeck manages a local MP3 library with playlists and a
recently-played log, and plays it through the system speaker.

The library lives as JSON files in a data directory (--data-dir or
TRACKDECK_DATA_DIR; defaults to the user config dir).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return initApplication()
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if application != nil {
			application.Shutdown()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "",
		"directory for the persisted library (default: user config dir)")
	rootCmd.PersistentFlags().BoolVar(&flagMockAudio, "mock-audio", false,
		"use the silent mock audio engine")

	rootCmd.AddCommand(
		versionCmd,
		importCmd,
		tracksCmd,
		playlistCmd,
		recentCmd,
		playCmd,
		exportCmd,
		restoreCmd,
		settingsCmd,
	)
}

func initApplication() error {
	// .env values never override the real environment.
	_ = godotenv.Load()

	cfg := app.DefaultConfig()
	cfg.DataDir = flagDataDir
	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("TRACKDECK_DATA_DIR")
	}
	cfg.UseMockAudio = flagMockAudio

	a, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}
	application = a
	return nil
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
