package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trackdeck/trackdeck/internal/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the library to a snapshot file",
	Long: `Export tracks, playlists, the recently-played log, and settings to a
single JSON snapshot file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot := application.Exporter().Export()

		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(),
			"exported %d track(s), %d playlist(s) to %s\n",
			len(snapshot.Tracks), len(snapshot.Playlists), args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore the library from a snapshot file",
	Long: `Restore the library from a snapshot file.

Collections present in the snapshot replace the stored ones; collections the
snapshot does not carry are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		var snapshot domain.Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return fmt.Errorf("failed to decode snapshot: %w", err)
		}

		application.Exporter().Import(snapshot)
		fmt.Fprintf(cmd.OutOrStdout(),
			"restored %d track(s), %d playlist(s) from %s\n",
			len(snapshot.Tracks), len(snapshot.Playlists), args[0])
		return nil
	},
}
