package services

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// AssembleResult maps a raw engine result into a result page.
// Hits keep their engine order. Missing or inconsistent pagination metadata
// is reported as domain.ErrInvalidResponse.
func AssembleResult(raw *domain.RawSearchResult) (*domain.SearchResultPage, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty engine result", domain.ErrInvalidResponse)
	}

	meta := []struct {
		name  string
		value *int
	}{
		{"page", raw.Page},
		{"hitsPerPage", raw.HitsPerPage},
		{"totalPages", raw.TotalPages},
		{"totalHits", raw.TotalHits},
	}
	for _, m := range meta {
		if m.value == nil {
			return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidResponse, m.name)
		}
	}

	perPage, totalHits, totalPages := *raw.HitsPerPage, *raw.TotalHits, *raw.TotalPages
	if perPage > 0 && totalPages != domain.TotalPages(totalHits, perPage) {
		return nil, fmt.Errorf("%w: totalPages %d does not match %d hits at %d per page",
			domain.ErrInvalidResponse, totalPages, totalHits, perPage)
	}

	items := make([]domain.ChapterDocument, 0, len(raw.Hits))
	for i, hit := range raw.Hits {
		var doc domain.ChapterDocument
		if err := json.Unmarshal(hit, &doc); err != nil {
			return nil, fmt.Errorf("%w: hit %d: %w", domain.ErrDomainParse, i, err)
		}
		if doc.PID == "" || doc.VideoID == "" {
			return nil, fmt.Errorf("%w: hit %d lacks pid or videoId", domain.ErrDomainParse, i)
		}
		items = append(items, doc)
	}

	return &domain.SearchResultPage{
		Items:      items,
		Page:       *raw.Page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalHits:  totalHits,
	}, nil
}
