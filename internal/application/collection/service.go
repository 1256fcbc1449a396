package collection

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/litholens/prospector/internal/application"
	"github.com/litholens/prospector/internal/domain/rocks"
)

// Service owns the collection: an in-memory, newest-first list mirrored to a
// Repository on every mutation. When the repository rejects a write the
// in-memory list keeps the change for the current session and the caller
// gets rocks.ErrNotPersisted to surface as a warning.
//
// All mutations are serialized by the mutex, so ids generated per save never
// race (uuid also makes them collision-free regardless).
type Service struct {
	Repo    rocks.Repository
	Archive rocks.ImageArchive // optional, nil disables archival
	Clock   application.Clock
	Logger  *zap.Logger

	mu    sync.Mutex
	items []rocks.SavedRock
}

// NewService loads the persisted collection into memory.
func NewService(ctx context.Context, repo rocks.Repository, clock application.Clock, logger *zap.Logger) (*Service, error) {
	items, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Repo: repo, Clock: clock, Logger: logger, items: items}, nil
}

// List returns the collection newest-first.
func (s *Service) List() []rocks.SavedRock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]rocks.SavedRock(nil), s.items...)
}

// Filter returns entries whose category contains the term,
// case-insensitive. rocks.FilterAll passes everything through unchanged.
func (s *Service) Filter(category string) []rocks.SavedRock {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]rocks.SavedRock, 0, len(s.items))
	for _, r := range s.items {
		if r.MatchesCategory(category) {
			out = append(out, r)
		}
	}
	return out
}

// Save stamps the analysis with a fresh id and the current time, prepends it
// and persists. On a persistence failure the entry still lives in memory
// for this session and the returned error wraps rocks.ErrNotPersisted.
func (s *Service) Save(ctx context.Context, a rocks.Analysis, image string) (rocks.SavedRock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock.Now()
	entry := rocks.SavedRock{
		Analysis: a,
		ID:       rocks.RockID(uuid.NewString()),
		Date:     now.UnixMilli(),
		Image:    image,
	}

	if s.Archive != nil {
		if url := s.archiveImage(ctx, entry); url != "" {
			entry.ImageURL = url
		}
	}

	s.items = append([]rocks.SavedRock{entry}, s.items...)

	if err := s.Repo.Insert(ctx, entry); err != nil {
		s.Logger.Warn("collection insert failed, entry kept in memory only",
			zap.String("id", string(entry.ID)), zap.Error(err))
		return entry, fmt.Errorf("%w: %v", rocks.ErrNotPersisted, err)
	}
	return entry, nil
}

// Delete removes the matching entry and persists; no-op when absent.
func (s *Service) Delete(ctx context.Context, id rocks.RockID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.items[:0]
	for _, r := range s.items {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	s.items = kept
	if !found {
		return nil
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		s.Logger.Warn("collection delete not persisted", zap.String("id", string(id)), zap.Error(err))
		return fmt.Errorf("%w: %v", rocks.ErrNotPersisted, err)
	}
	return nil
}

// Get returns one entry by id.
func (s *Service) Get(id rocks.RockID) (rocks.SavedRock, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.ID == id {
			return r, true
		}
	}
	return rocks.SavedRock{}, false
}

// IsSaved reports whether this analysis is already in the collection. Used
// by the UI to disable a second save of the same result.
func (s *Service) IsSaved(a rocks.Analysis) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.SameAnalysis(a) {
			return true
		}
	}
	return false
}

// Achievements evaluates the badge table over the current collection.
func (s *Service) Achievements() ([]rocks.BadgeStatus, int) {
	s.mu.Lock()
	items := s.items
	s.mu.Unlock()
	return rocks.EvaluateBadges(items), rocks.Progress(items)
}

// archiveImage uploads the decoded JPEG to the configured archive. Failures
// only cost the external URL, never the save itself.
func (s *Service) archiveImage(ctx context.Context, entry rocks.SavedRock) string {
	data, ok := decodeDataURI(entry.Image)
	if !ok {
		return ""
	}
	url, err := s.Archive.PutImage(ctx, fmt.Sprintf("rocks/%s.jpg", entry.ID), data)
	if err != nil {
		s.Logger.Warn("image archive upload failed", zap.String("id", string(entry.ID)), zap.Error(err))
		return ""
	}
	return url
}

func decodeDataURI(uri string) ([]byte, bool) {
	_, b64, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, false
	}
	return data, true
}
