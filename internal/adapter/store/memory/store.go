// Package memory provides an in-memory Store for tests.
package memory

import (
	"encoding/json"
	"sync"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// Store keeps documents as marshaled JSON in a map. Values round-trip through
// encoding/json on every access, so tests exercise the same serialization
// behavior as the file store.
//
// Thread-safe: all operations protected by sync.RWMutex.
type Store struct {
	docs map[string][]byte
	mu   sync.RWMutex

	// failReads/failWrites simulate medium failures (for testing the
	// repositories' swallow-and-continue behavior).
	failReads  bool
	failWrites bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

// SetFailReads makes every subsequent Read fail (for testing).
func (s *Store) SetFailReads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads = fail
}

// SetFailWrites makes every subsequent Write fail (for testing).
func (s *Store) SetFailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}

// Read unmarshals the document stored under key into out.
// Returns ports.ErrKeyNotFound if the key has never been written.
func (s *Store) Read(key string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failReads {
		return domain.NewStorageError("read", key, errSimulated)
	}

	data, ok := s.docs[key]
	if !ok {
		return ports.ErrKeyNotFound
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domain.NewStorageError("read", key, err)
	}
	return nil
}

// Write marshals v and stores it under key.
func (s *Store) Write(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return domain.NewStorageError("write", key, errSimulated)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return domain.NewStorageError("write", key, err)
	}
	s.docs[key] = data
	return nil
}

// Len returns the number of stored keys (for testing).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

type simulatedError struct{}

func (simulatedError) Error() string { return "simulated medium failure" }

var errSimulated = simulatedError{}

// Verify interface implementation
var _ ports.Store = (*Store)(nil)
