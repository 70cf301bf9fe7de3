package media

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/logger"
)

func TestIsMP3(t *testing.T) {
	assert.True(t, IsMP3("/music/song.mp3", ""))
	assert.True(t, IsMP3("/music/SONG.MP3", ""))
	assert.True(t, IsMP3("/music/stream", "audio/mpeg"))
	assert.True(t, IsMP3("/music/stream", "audio/mp3"))

	assert.False(t, IsMP3("/music/song.flac", ""))
	assert.False(t, IsMP3("/music/song.ogg", "audio/ogg"))
	assert.False(t, IsMP3("/docs/notes.txt", "text/plain"))
}

func TestProber_RejectsNonMP3(t *testing.T) {
	prober := NewProber(logger.NewTestLogger())

	_, err := prober.Probe("/docs/notes.txt")
	assert.ErrorIs(t, err, domain.ErrNotMP3)
}

func TestProber_RejectsEmptyPath(t *testing.T) {
	prober := NewProber(logger.NewTestLogger())

	_, err := prober.Probe("")
	assert.True(t, domain.IsValidation(err))
}

func TestProber_MissingFile(t *testing.T) {
	prober := NewProber(logger.NewTestLogger())

	_, err := prober.Probe("/nonexistent/song.mp3")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestProber_FallsBackToFilenameTitle(t *testing.T) {
	prober := NewProber(logger.NewTestLogger())

	// A file that is neither taggable nor decodable still probes; the
	// title falls back to the file name and the duration stays zero.
	path := filepath.Join(t.TempDir(), "Highway Anthem.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))

	track, err := prober.Probe(path)
	require.NoError(t, err)

	assert.Equal(t, "Highway Anthem", track.Title)
	assert.Equal(t, path, track.Source)
	assert.Empty(t, track.Artist)
	assert.Zero(t, track.Duration)
}

func TestProber_ReadsID3Tags(t *testing.T) {
	prober := NewProber(logger.NewTestLogger())

	path := filepath.Join(t.TempDir(), "untagged-name.mp3")
	require.NoError(t, os.WriteFile(path, buildID3v23(t, map[string]string{
		"TIT2": "Road Song",
		"TPE1": "The Drifters",
		"TALB": "Mile Markers",
	}), 0o644))

	track, err := prober.Probe(path)
	require.NoError(t, err)

	assert.Equal(t, "Road Song", track.Title)
	assert.Equal(t, "The Drifters", track.Artist)
	assert.Equal(t, "Mile Markers", track.Album)
}

// buildID3v23 assembles a minimal ID3v2.3 tag with the given text frames.
func buildID3v23(t *testing.T, frames map[string]string) []byte {
	t.Helper()

	var body []byte
	for id, value := range frames {
		data := append([]byte{0x00}, []byte(value)...) // ISO-8859-1 encoding marker
		frame := make([]byte, 0, 10+len(data))
		frame = append(frame, []byte(id)...)
		size := make([]byte, 4)
		binary.BigEndian.PutUint32(size, uint32(len(data)))
		frame = append(frame, size...)
		frame = append(frame, 0x00, 0x00) // flags
		frame = append(frame, data...)
		body = append(body, frame...)
	}

	header := []byte{'I', 'D', '3', 0x03, 0x00, 0x00}
	header = append(header,
		byte(len(body)>>21&0x7f),
		byte(len(body)>>14&0x7f),
		byte(len(body)>>7&0x7f),
		byte(len(body)&0x7f),
	)
	return append(header, body...)
}
