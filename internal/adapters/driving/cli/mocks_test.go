package cli

import (
	"context"
	"sync"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

type mockSearchService struct {
	mu   sync.Mutex
	reqs []domain.SearchRequest
	page *domain.SearchResultPage
	err  error
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResultPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reqs = append(m.reqs, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.page != nil {
		return m.page, nil
	}
	return &domain.SearchResultPage{Page: req.Page, PerPage: req.PerPage}, nil
}

func (m *mockSearchService) last() domain.SearchRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reqs[len(m.reqs)-1]
}

type mockIngestService struct {
	mu      sync.Mutex
	opts    []driving.IngestOptions
	videos  []domain.Video
	run     *domain.IngestRun
	runs    []domain.IngestRun
	err     error
	ingests int
}

func (m *mockIngestService) Fetch(_ context.Context, opts driving.IngestOptions) ([]domain.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts = append(m.opts, opts)
	return m.videos, m.err
}

func (m *mockIngestService) Index(_ context.Context, opts driving.IngestOptions, videos []domain.Video) (*domain.IngestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts = append(m.opts, opts)
	return m.result(opts, len(videos)), m.err
}

func (m *mockIngestService) Ingest(_ context.Context, opts driving.IngestOptions) (*domain.IngestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts = append(m.opts, opts)
	m.ingests++
	return m.result(opts, len(m.videos)), m.err
}

func (m *mockIngestService) result(opts driving.IngestOptions, fetched int) *domain.IngestRun {
	if m.run != nil {
		return m.run
	}
	status := domain.RunSucceeded
	if m.err != nil {
		status = domain.RunFailed
	}
	return &domain.IngestRun{
		ID:            "0123456789abcdef",
		ChannelID:     opts.ChannelID,
		Source:        opts.Source,
		Status:        status,
		VideosFetched: fetched,
		VideosIndexed: fetched,
	}
}

func (m *mockIngestService) Status(_ context.Context, channelID string) (*driving.IngestStatus, error) {
	return &driving.IngestStatus{ChannelID: channelID}, nil
}

func (m *mockIngestService) Runs(_ context.Context, limit int) ([]domain.IngestRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && len(m.runs) > limit {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockIngestService) lastOpts() driving.IngestOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opts[len(m.opts)-1]
}

type mockIndexAdmin struct {
	chapters map[string]domain.ChapterDocument
	videos   map[string]domain.VideoDocument
	deleted  []string
	cleared  bool
	setup    bool
	err      error
}

func (m *mockIndexAdmin) Setup(context.Context) error {
	m.setup = true
	return m.err
}

func (m *mockIndexAdmin) Chapter(_ context.Context, pid string) (*domain.ChapterDocument, error) {
	if d, ok := m.chapters[pid]; ok {
		return &d, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockIndexAdmin) Video(_ context.Context, id string) (*domain.VideoDocument, error) {
	if d, ok := m.videos[id]; ok {
		return &d, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockIndexAdmin) DeleteChapters(_ context.Context, pids []string) error {
	m.deleted = append(m.deleted, pids...)
	return m.err
}

func (m *mockIndexAdmin) DeleteVideo(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockIndexAdmin) Clear(context.Context) error {
	m.cleared = true
	return m.err
}

func (m *mockIndexAdmin) Stats(context.Context) (*driving.IndexStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &driving.IndexStats{Videos: len(m.videos), Chapters: len(m.chapters)}, nil
}
