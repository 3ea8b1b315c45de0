package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
)

// --- VideoProvider ---

// mockProvider serves a fixed list of pages.
type mockProvider struct {
	mu sync.Mutex

	collection    string
	collectionErr error
	pages         []driven.ItemPage
	videos        map[string]domain.Video

	// listErrs is consumed one entry per ListItems call.
	listErrs   []error
	detailsErr error

	listCalls    []string
	detailsCalls [][]string
	pageSizes    []int
}

func newMockProvider(pages ...driven.ItemPage) *mockProvider {
	p := &mockProvider{
		collection: "UUchannel",
		pages:      pages,
		videos:     make(map[string]domain.Video),
	}
	for _, page := range pages {
		for _, item := range page.Items {
			if item.Kind == driven.VideoKind {
				p.videos[item.ResourceID] = domain.Video{ID: item.ResourceID, Title: "title " + item.ResourceID}
			}
		}
	}
	return p
}

func (m *mockProvider) UploadsCollection(_ context.Context, _ string) (string, error) {
	if m.collectionErr != nil {
		return "", m.collectionErr
	}
	return m.collection, nil
}

func (m *mockProvider) ListItems(_ context.Context, _ string, pageToken string, pageSize int) (*driven.ItemPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCalls = append(m.listCalls, pageToken)
	m.pageSizes = append(m.pageSizes, pageSize)
	if len(m.listErrs) > 0 {
		err := m.listErrs[0]
		m.listErrs = m.listErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	idx := 0
	if pageToken != "" {
		if _, err := fmt.Sscanf(pageToken, "page-%d", &idx); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if idx >= len(m.pages) {
		return &driven.ItemPage{}, nil
	}
	page := m.pages[idx]
	if len(page.Items) > pageSize {
		page.Items = page.Items[:pageSize]
	}
	if idx+1 < len(m.pages) {
		page.NextPageToken = fmt.Sprintf("page-%d", idx+1)
	}
	return &page, nil
}

func (m *mockProvider) GetVideos(_ context.Context, ids []string) ([]domain.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.detailsCalls = append(m.detailsCalls, append([]string(nil), ids...))
	if m.detailsErr != nil {
		return nil, m.detailsErr
	}
	var out []domain.Video
	// Reverse order to check the fetcher restores collection order.
	for i := len(ids) - 1; i >= 0; i-- {
		if v, ok := m.videos[ids[i]]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func videoItems(ids ...string) []driven.CollectionItem {
	items := make([]driven.CollectionItem, len(ids))
	for i, id := range ids {
		items[i] = driven.CollectionItem{Kind: driven.VideoKind, ResourceID: id}
	}
	return items
}

// noSleepBackoff keeps the default schedule shape on a nanosecond scale.
func noSleepBackoff() Backoff {
	return Backoff{Initial: time.Nanosecond, Max: 60 * time.Nanosecond}
}

// --- ChapterIndex ---

type mockChapterIndex struct {
	mu sync.Mutex

	docs      map[string]domain.ChapterDocument
	upserts   int
	upsertErr error
	healthErr error

	raw       *domain.RawSearchResult
	searchErr error
	lastQuery *domain.EngineQuery
}

func newMockChapterIndex() *mockChapterIndex {
	return &mockChapterIndex{docs: make(map[string]domain.ChapterDocument)}
}

func (m *mockChapterIndex) Upsert(_ context.Context, docs []domain.ChapterDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	for _, d := range docs {
		m.docs[d.PID] = d
	}
	return nil
}

func (m *mockChapterIndex) Get(_ context.Context, pid string) (*domain.ChapterDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[pid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (m *mockChapterIndex) All(_ context.Context) ([]domain.ChapterDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ChapterDocument, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out, nil
}

func (m *mockChapterIndex) Delete(_ context.Context, pids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pid := range pids {
		delete(m.docs, pid)
	}
	return nil
}

func (m *mockChapterIndex) DeleteByVideo(_ context.Context, videoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for pid, d := range m.docs {
		if d.VideoID == videoID {
			delete(m.docs, pid)
		}
	}
	return nil
}

func (m *mockChapterIndex) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = make(map[string]domain.ChapterDocument)
	return nil
}

func (m *mockChapterIndex) Search(_ context.Context, q domain.EngineQuery) (*domain.RawSearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQuery = &q
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.raw, nil
}

func (m *mockChapterIndex) Health(_ context.Context) error {
	return m.healthErr
}

// --- VideoIndex ---

type mockVideoIndex struct {
	mu sync.Mutex

	docs      map[string]domain.VideoDocument
	upsertErr error
	// dropped ids are accepted by Upsert but never become visible.
	dropped map[string]bool
}

func newMockVideoIndex() *mockVideoIndex {
	return &mockVideoIndex{
		docs:    make(map[string]domain.VideoDocument),
		dropped: make(map[string]bool),
	}
}

func (m *mockVideoIndex) Upsert(_ context.Context, docs []domain.VideoDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	for _, d := range docs {
		if !m.dropped[d.ID] {
			m.docs[d.ID] = d
		}
	}
	return nil
}

func (m *mockVideoIndex) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[id]
	return ok, nil
}

func (m *mockVideoIndex) Get(_ context.Context, id string) (*domain.VideoDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (m *mockVideoIndex) All(_ context.Context) ([]domain.VideoDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.VideoDocument, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockVideoIndex) Delete(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.docs, id)
	}
	return nil
}

func (m *mockVideoIndex) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = make(map[string]domain.VideoDocument)
	return nil
}

// --- RunStore ---

type mockRunStore struct {
	mu   sync.Mutex
	runs map[string]domain.IngestRun
}

func newMockRunStore() *mockRunStore {
	return &mockRunStore{runs: make(map[string]domain.IngestRun)}
}

func (m *mockRunStore) Save(_ context.Context, run *domain.IngestRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = *run
	return nil
}

func (m *mockRunStore) Get(_ context.Context, id string) (*domain.IngestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (m *mockRunStore) List(_ context.Context, limit int) ([]domain.IngestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.IngestRun, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRunStore) Prune(_ context.Context, _ int) error {
	return nil
}

// --- IndexSetup ---

type mockSetup struct {
	calls int
	err   error
}

func (m *mockSetup) Setup(_ context.Context) error {
	m.calls++
	return m.err
}

// rawHits marshals documents into engine hits.
func rawHits(docs ...any) [][]byte {
	out := make([][]byte, len(docs))
	for i, d := range docs {
		b, err := json.Marshal(d)
		if err != nil {
			panic(err)
		}
		out[i] = b
	}
	return out
}

func intPtr(n int) *int { return &n }
