package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

func TestStore_WriteAndRead(t *testing.T) {
	store := New()

	in := []domain.Track{{ID: "t1", Title: "Song"}}
	require.NoError(t, store.Write(ports.KeyTracks, in))

	var out []domain.Track
	require.NoError(t, store.Read(ports.KeyTracks, &out))
	assert.Equal(t, in, out)
	assert.Equal(t, 1, store.Len())
}

func TestStore_ReadMissingKey(t *testing.T) {
	store := New()

	var out []domain.Track
	assert.ErrorIs(t, store.Read(ports.KeyTracks, &out), ports.ErrKeyNotFound)
}

func TestStore_SimulatedFailures(t *testing.T) {
	store := New()
	require.NoError(t, store.Write(ports.KeyTracks, []domain.Track{{ID: "t1"}}))

	store.SetFailWrites(true)
	err := store.Write(ports.KeyTracks, []domain.Track{{ID: "t2"}})
	require.Error(t, err)

	// The stored document is untouched by the failed write.
	var out []domain.Track
	require.NoError(t, store.Read(ports.KeyTracks, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].ID)

	store.SetFailReads(true)
	assert.Error(t, store.Read(ports.KeyTracks, &out))
}

func TestStore_ValuesAreDetached(t *testing.T) {
	store := New()

	in := []domain.Track{{ID: "t1", Title: "Original"}}
	require.NoError(t, store.Write(ports.KeyTracks, in))

	// Mutating the slice after the write must not change the stored copy.
	in[0].Title = "Mutated"

	var out []domain.Track
	require.NoError(t, store.Read(ports.KeyTracks, &out))
	assert.Equal(t, "Original", out[0].Title)
}
