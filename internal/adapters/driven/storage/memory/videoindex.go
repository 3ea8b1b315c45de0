package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
)

// Ensure VideoIndex implements the interface.
var _ driven.VideoIndex = (*VideoIndex)(nil)

// VideoIndex is an in-memory video index.
type VideoIndex struct {
	mu   sync.RWMutex
	docs map[string]domain.VideoDocument
}

// NewVideoIndex creates an empty video index.
func NewVideoIndex() *VideoIndex {
	return &VideoIndex{docs: make(map[string]domain.VideoDocument)}
}

// Upsert stores documents by id.
func (i *VideoIndex) Upsert(_ context.Context, docs []domain.VideoDocument) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, d := range docs {
		if d.ID == "" {
			return fmt.Errorf("%w: video document without id", domain.ErrInvalidInput)
		}
		i.docs[d.ID] = d
	}
	return nil
}

// Exists reports whether id is stored.
func (i *VideoIndex) Exists(_ context.Context, id string) (bool, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.docs[id]
	return ok, nil
}

// Get returns a document by id.
func (i *VideoIndex) Get(_ context.Context, id string) (*domain.VideoDocument, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	d, ok := i.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

// All returns every document, newest first.
func (i *VideoIndex) All(_ context.Context) ([]domain.VideoDocument, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]domain.VideoDocument, 0, len(i.docs))
	for _, d := range i.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].PublishedAt != out[b].PublishedAt {
			return out[a].PublishedAt > out[b].PublishedAt
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

// Delete removes documents by id.
func (i *VideoIndex) Delete(_ context.Context, ids []string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, id := range ids {
		delete(i.docs, id)
	}
	return nil
}

// DeleteAll empties the index.
func (i *VideoIndex) DeleteAll(_ context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.docs = make(map[string]domain.VideoDocument)
	return nil
}
