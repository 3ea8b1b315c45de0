package mcp

import (
	"context"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	page *domain.SearchResultPage
	got  domain.SearchRequest
	err  error
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResultPage, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	if m.page == nil {
		return &domain.SearchResultPage{Page: req.Page, PerPage: req.PerPage}, nil
	}
	return m.page, nil
}

// mockIndexAdmin is a mock implementation of driving.IndexAdminService.
type mockIndexAdmin struct {
	chapter *domain.ChapterDocument
	video   *domain.VideoDocument
	stats   *driving.IndexStats
	err     error
}

func (m *mockIndexAdmin) Setup(_ context.Context) error { return m.err }

func (m *mockIndexAdmin) Chapter(_ context.Context, _ string) (*domain.ChapterDocument, error) {
	return m.chapter, m.err
}

func (m *mockIndexAdmin) Video(_ context.Context, _ string) (*domain.VideoDocument, error) {
	return m.video, m.err
}

func (m *mockIndexAdmin) DeleteChapters(_ context.Context, _ []string) error { return m.err }

func (m *mockIndexAdmin) DeleteVideo(_ context.Context, _ string) error { return m.err }

func (m *mockIndexAdmin) Clear(_ context.Context) error { return m.err }

func (m *mockIndexAdmin) Stats(_ context.Context) (*driving.IndexStats, error) {
	return m.stats, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	runs []domain.IngestRun
	err  error
}

func (m *mockIngestService) Fetch(_ context.Context, _ driving.IngestOptions) ([]domain.Video, error) {
	return nil, m.err
}

func (m *mockIngestService) Index(
	_ context.Context,
	_ driving.IngestOptions,
	_ []domain.Video,
) (*domain.IngestRun, error) {
	return nil, m.err
}

func (m *mockIngestService) Ingest(_ context.Context, _ driving.IngestOptions) (*domain.IngestRun, error) {
	return nil, m.err
}

func (m *mockIngestService) Status(_ context.Context, _ string) (*driving.IngestStatus, error) {
	return nil, m.err
}

func (m *mockIngestService) Runs(_ context.Context, _ int) ([]domain.IngestRun, error) {
	return m.runs, m.err
}
