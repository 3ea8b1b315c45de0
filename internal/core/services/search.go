package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
	"github.com/custodia-labs/tssearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers chapter searches against the chapter index.
type SearchService struct {
	index    driven.ChapterIndex
	compiler *QueryCompiler
}

// NewSearchService creates a search service. A nil compiler uses the default day zone.
func NewSearchService(index driven.ChapterIndex, compiler *QueryCompiler) *SearchService {
	if compiler == nil {
		compiler = NewQueryCompiler(nil)
	}
	return &SearchService{index: index, compiler: compiler}
}

// Search validates req, checks engine health, runs the compiled query
// and assembles the page.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResultPage, error) {
	logger.Section("Search")
	logger.Debug("Keyword: %q, page %d/%d per page", req.Keyword, req.Page, req.PerPage)

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.index == nil {
		return nil, fmt.Errorf("search: %w: chapter index not configured", domain.ErrServiceUnavailable)
	}

	if err := s.index.Health(ctx); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	query := s.compiler.Compile(req)
	logger.Debug("Compiled %d filter clauses, %d attributes", len(query.Clauses), len(query.Attributes))

	raw, err := s.index.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	page, err := AssembleResult(raw)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Info("Search %q: %d hits, page %d of %d", req.Keyword, page.TotalHits, page.Page, page.TotalPages)
	return page, nil
}
