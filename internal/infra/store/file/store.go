// Package file persists the collection the way the browser app did: one
// JSON blob under a fixed key. A legacy blob from the pre-rename schema is
// read as a fallback when the current one is empty, without ever being
// written back.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/litholens/prospector/internal/domain/rocks"
)

const (
	// CurrentName is the storage key of the live collection blob.
	CurrentName = "prospectors_pal_library.json"
	// LegacyName is the pre-rename key, read-only fallback.
	LegacyName = "lithoLens_library.json"
)

type Store struct {
	mu     sync.Mutex
	path   string
	legacy string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{
		path:   filepath.Join(dir, CurrentName),
		legacy: filepath.Join(dir, LegacyName),
	}, nil
}

func (s *Store) List(ctx context.Context) ([]rocks.SavedRock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Insert(ctx context.Context, r rocks.SavedRock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	items = append([]rocks.SavedRock{r}, items...)
	return s.write(items)
}

func (s *Store) Delete(ctx context.Context, id rocks.RockID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return s.write(kept)
}

// Ping for health checks.
func (s *Store) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

func (s *Store) load() ([]rocks.SavedRock, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		// migration path: old key is consulted but never rewritten
		data, err = os.ReadFile(s.legacy)
		if os.IsNotExist(err) {
			return []rocks.SavedRock{}, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	var items []rocks.SavedRock
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse collection: %w", err)
	}
	return items, nil
}

// write replaces the blob atomically so a failed write never truncates the
// existing collection.
func (s *Store) write(items []rocks.SavedRock) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}
