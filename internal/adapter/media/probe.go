// Package media provides MP3 validation and metadata extraction for files
// entering the library.
package media

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/v2/mp3"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// acceptedMediaTypes are the media types recognized as MP3 next to the file
// extension check.
var acceptedMediaTypes = []string{"audio/mpeg", "audio/mp3"}

// IsMP3 reports whether the path or declared media type identifies an MP3.
func IsMP3(path, mediaType string) bool {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		return true
	}
	for _, accepted := range acceptedMediaTypes {
		if strings.EqualFold(mediaType, accepted) {
			return true
		}
	}
	return false
}

// Prober validates MP3 files and extracts their metadata. Tag data is taken
// from ID3 frames; the duration comes from decoding the stream. Missing tags
// never fail a probe, the file name stands in for the title instead.
type Prober struct {
	logger *slog.Logger
}

// NewProber creates a new prober.
func NewProber(logger *slog.Logger) *Prober {
	return &Prober{logger: logger}
}

// Probe validates the file at path and returns a track populated with its
// metadata. The returned track carries no id; the repository assigns one when
// the track is added. Non-MP3 files are rejected with ErrNotMP3, missing
// files with ErrFileNotFound.
func (p *Prober) Probe(path string) (*domain.Track, error) {
	if path == "" {
		return nil, domain.NewValidationError("path", path, "path is empty")
	}
	if !IsMP3(path, "") {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotMP3, filepath.Base(path))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, domain.ErrFileNotFound
	}

	track := &domain.Track{
		Title:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Source: path,
	}

	p.readTags(path, track)
	p.readDuration(path, track)

	return track, nil
}

// readTags fills title, artist, album, and artwork from ID3 frames. Untagged
// files keep the filename-derived title.
func (p *Prober) readTags(path string, track *domain.Track) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil || metadata == nil {
		p.logger.Debug("no readable tags", slog.String("path", path))
		return
	}

	if title := strings.TrimSpace(metadata.Title()); title != "" {
		track.Title = title
	}
	if artist := strings.TrimSpace(metadata.Artist()); artist != "" {
		track.Artist = artist
	}
	if album := strings.TrimSpace(metadata.Album()); album != "" {
		track.Album = album
	}
	if picture := metadata.Picture(); picture != nil && len(picture.Data) > 0 {
		track.Artwork = encodeArtwork(picture)
	}
}

// readDuration decodes the stream to derive the track length. A file that
// fails to decode keeps a zero duration; playback will surface its own error.
func (p *Prober) readDuration(path string, track *domain.Track) {
	file, err := os.Open(path)
	if err != nil {
		return
	}

	streamer, format, err := mp3.Decode(file)
	if err != nil {
		_ = file.Close()
		p.logger.Warn("failed to decode for duration",
			slog.String("path", path), slog.Any("error", err))
		return
	}
	defer streamer.Close()

	track.Duration = format.SampleRate.D(streamer.Len())
}

// encodeArtwork renders embedded cover art as a data URL.
func encodeArtwork(picture *tag.Picture) string {
	mediaType := picture.MIMEType
	if mediaType == "" {
		mediaType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s",
		mediaType, base64.StdEncoding.EncodeToString(picture.Data))
}

// Verify interface implementation
var _ ports.MetadataProber = (*Prober)(nil)
