package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
)

// Ensure ChapterIndex implements the interface.
var _ driven.ChapterIndex = (*ChapterIndex)(nil)

// ChapterIndex is an in-memory chapter index. It evaluates compiled queries
// itself: every keyword term must occur in the label, case-insensitively,
// and hits are ordered by publishedOrLiveAt descending.
type ChapterIndex struct {
	mu   sync.RWMutex
	docs map[string]domain.ChapterDocument
}

// NewChapterIndex creates an empty chapter index.
func NewChapterIndex() *ChapterIndex {
	return &ChapterIndex{docs: make(map[string]domain.ChapterDocument)}
}

// Upsert stores documents by pid, replacing existing ones.
func (i *ChapterIndex) Upsert(_ context.Context, docs []domain.ChapterDocument) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, d := range docs {
		if d.PID == "" {
			return fmt.Errorf("%w: chapter document without pid", domain.ErrInvalidInput)
		}
		i.docs[d.PID] = d
	}
	return nil
}

// Get returns a document by pid.
func (i *ChapterIndex) Get(_ context.Context, pid string) (*domain.ChapterDocument, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	d, ok := i.docs[pid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

// All returns every document ordered by pid.
func (i *ChapterIndex) All(_ context.Context) ([]domain.ChapterDocument, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]domain.ChapterDocument, 0, len(i.docs))
	for _, d := range i.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].PID < out[b].PID })
	return out, nil
}

// Delete removes documents by pid. Unknown pids are ignored.
func (i *ChapterIndex) Delete(_ context.Context, pids []string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, pid := range pids {
		delete(i.docs, pid)
	}
	return nil
}

// DeleteByVideo removes every chapter of a video.
func (i *ChapterIndex) DeleteByVideo(_ context.Context, videoID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for pid, d := range i.docs {
		if d.VideoID == videoID {
			delete(i.docs, pid)
		}
	}
	return nil
}

// DeleteAll empties the index.
func (i *ChapterIndex) DeleteAll(_ context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.docs = make(map[string]domain.ChapterDocument)
	return nil
}

// Health always succeeds.
func (i *ChapterIndex) Health(_ context.Context) error {
	return nil
}

// Search evaluates q against the stored documents.
func (i *ChapterIndex) Search(_ context.Context, q domain.EngineQuery) (*domain.RawSearchResult, error) {
	i.mu.RLock()
	var matched []domain.ChapterDocument
	terms := strings.Fields(strings.ToLower(q.Text))
	for _, d := range i.docs {
		if matchesText(d, terms) && matchesClauses(d, q.Clauses) {
			matched = append(matched, d)
		}
	}
	i.mu.RUnlock()

	sort.Slice(matched, func(a, b int) bool {
		if matched[a].PublishedOrLiveAt != matched[b].PublishedOrLiveAt {
			return matched[a].PublishedOrLiveAt > matched[b].PublishedOrLiveAt
		}
		return matched[a].PID < matched[b].PID
	})
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = domain.DefaultPerPage
	}
	page := max(q.Page, 1)
	total := len(matched)
	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	hits := make([][]byte, 0, end-start)
	for _, d := range matched[start:end] {
		hit, err := project(d, q.Attributes)
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}

	totalPages := domain.TotalPages(total, perPage)
	return &domain.RawSearchResult{
		Hits:        hits,
		Page:        &page,
		HitsPerPage: &perPage,
		TotalPages:  &totalPages,
		TotalHits:   &total,
	}, nil
}

func matchesText(d domain.ChapterDocument, terms []string) bool {
	label := strings.ToLower(d.Description)
	for _, term := range terms {
		if !strings.Contains(label, term) {
			return false
		}
	}
	return true
}

func matchesClauses(d domain.ChapterDocument, clauses []domain.Clause) bool {
	for _, c := range clauses {
		switch c := c.(type) {
		case domain.IDIn:
			if !slices.Contains(c.IDs, d.VideoID) {
				return false
			}
		case domain.TagIn:
			if d.VideoDetails == nil || !slices.ContainsFunc(d.VideoDetails.VideoTags, func(tag string) bool {
				return slices.Contains(c.Tags, tag)
			}) {
				return false
			}
		case domain.DateRange:
			if c.From != nil && d.PublishedOrLiveAt < *c.From {
				return false
			}
			if c.Before != nil && d.PublishedOrLiveAt >= *c.Before {
				return false
			}
		case domain.DateExact:
			if d.PublishedOrLiveAt < c.Start || d.PublishedOrLiveAt >= c.End {
				return false
			}
		}
	}
	return true
}

// project keeps only the allowed attributes of d, descending into
// videoDetails for dotted names. An empty allow-list keeps everything.
func project(d domain.ChapterDocument, attributes []string) ([]byte, error) {
	full, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode hit %s: %w", d.PID, err)
	}
	if len(attributes) == 0 {
		return full, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(full, &fields); err != nil {
		return nil, fmt.Errorf("decode hit %s: %w", d.PID, err)
	}

	out := make(map[string]any, len(attributes))
	for key, value := range fields {
		if slices.Contains(attributes, key) {
			out[key] = value
			continue
		}
		nested, ok := value.(map[string]any)
		if !ok {
			continue
		}
		kept := make(map[string]any)
		for sub, v := range nested {
			if slices.Contains(attributes, key+"."+sub) {
				kept[sub] = v
			}
		}
		if len(kept) > 0 {
			out[key] = kept
		}
	}
	return json.Marshal(out)
}
