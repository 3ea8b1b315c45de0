package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore keeps ingestion run history in memory.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.IngestRun
}

// NewRunStore creates an empty run store.
func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[string]domain.IngestRun)}
}

// Save stores or replaces a run.
func (s *RunStore) Save(_ context.Context, run *domain.IngestRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = *run
	return nil
}

// Get retrieves a run by ID.
func (s *RunStore) Get(_ context.Context, id string) (*domain.IngestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// List returns runs newest first, at most limit when limit is positive.
func (s *RunStore) List(_ context.Context, limit int) ([]domain.IngestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(limit), nil
}

// Prune keeps the newest keep runs.
func (s *RunStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if keep < 0 || len(s.runs) <= keep {
		return nil
	}
	for _, run := range s.sorted(0)[keep:] {
		delete(s.runs, run.ID)
	}
	return nil
}

// sorted must be called with the lock held.
func (s *RunStore) sorted(limit int) []domain.IngestRun {
	out := make([]domain.IngestRun, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r)
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].StartedAt.Equal(out[b].StartedAt) {
			return out[a].StartedAt.After(out[b].StartedAt)
		}
		return out[a].ID < out[b].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
