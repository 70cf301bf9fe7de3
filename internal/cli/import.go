package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trackdeck/trackdeck/internal/domain"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import MP3 files into the library",
	Long: `Import one or more MP3 files into the library.

Files are validated and probed sequentially; a file that is not an MP3 or
cannot be read is skipped without aborting the batch. Metadata is taken from
ID3 tags, falling back to the file name for the title.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Progress is published on the event bus; mirror it to stderr.
		sub := application.EventBus().Subscribe(
			domain.EventImportProgress,
			func(event domain.Event) {
				progress, ok := event.(domain.ImportProgressEvent)
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%",
					progress.Progress.Processed,
					progress.Progress.Total,
					progress.Progress.Fraction()*100)
			})
		defer application.EventBus().Unsubscribe(sub)

		imported := application.Library().ImportAll(args)
		fmt.Fprintln(os.Stderr)

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d file(s)\n",
			len(imported), len(args))
		renderTracks(cmd.OutOrStdout(), imported)

		if len(imported) == 0 {
			return fmt.Errorf("no files imported")
		}
		return nil
	},
}
