// Package file provides a Store backed by one JSON document per key.
//
// Each key maps to <dir>/<key>.json. Writes go through a temp file and an
// atomic rename, so a crash mid-write never corrupts an existing document.
// There is no cross-key atomicity: a crash between two Write calls can leave
// the collections inconsistent, which the repositories tolerate by filtering
// dangling references at read time.
package file

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// Store persists JSON documents under fixed keys in a single directory.
//
// Thread-safe: all operations protected by sync.RWMutex. Concurrent access
// from multiple processes is out of scope (last writer wins).
type Store struct {
	dir    string
	logger *slog.Logger
	mu     sync.RWMutex
}

// New creates a file store rooted at dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Read unmarshals the document stored under key into out.
// Returns ports.ErrKeyNotFound if the key has never been written.
func (s *Store) Read(key string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ports.ErrKeyNotFound
		}
		return domain.NewStorageError("read", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return domain.NewStorageError("read", key, err)
	}
	return nil
}

// Write marshals v and stores it under key, replacing any prior document.
func (s *Store) Write(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return domain.NewStorageError("write", key, err)
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return domain.NewStorageError("write", key, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.discard(tmp.Name())
		return domain.NewStorageError("write", key, err)
	}
	if err := tmp.Close(); err != nil {
		s.discard(tmp.Name())
		return domain.NewStorageError("write", key, err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		s.discard(tmp.Name())
		return domain.NewStorageError("write", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) discard(name string) {
	if err := os.Remove(name); err != nil && s.logger != nil {
		s.logger.Warn("failed to remove temp file", slog.String("file", name), slog.Any("error", err))
	}
}

// Verify interface implementation
var _ ports.Store = (*Store)(nil)
