package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

func fullMeta(hits [][]byte, page, perPage, totalPages, totalHits int) *domain.RawSearchResult {
	return &domain.RawSearchResult{
		Hits:        hits,
		Page:        intPtr(page),
		HitsPerPage: intPtr(perPage),
		TotalPages:  intPtr(totalPages),
		TotalHits:   intPtr(totalHits),
	}
}

func TestAssembleResult(t *testing.T) {
	hits := rawHits(
		map[string]any{
			"pid": "v1-743-abc", "videoId": "v1", "description": "Main topic", "elapsedTime": 743,
			"videoDetails": map[string]any{"videoTitle": "Stream #1"},
		},
		map[string]any{"pid": "v2-10-def", "videoId": "v2", "description": "Intro", "elapsedTime": 10},
	)

	page, err := AssembleResult(fullMeta(hits, 1, 25, 1, 2))

	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 25, page.PerPage)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 2, page.TotalHits)
	require.Len(t, page.Items, 2)

	assert.Equal(t, "v1-743-abc", page.Items[0].PID)
	assert.Equal(t, 743, page.Items[0].ElapsedTime)
	require.NotNil(t, page.Items[0].VideoDetails)
	assert.Equal(t, "Stream #1", page.Items[0].VideoDetails.VideoTitle)

	assert.Equal(t, "v2-10-def", page.Items[1].PID, "engine order preserved")
	assert.Nil(t, page.Items[1].VideoDetails, "missing details are dropped, not defaulted")
}

func TestAssembleResult_Empty(t *testing.T) {
	page, err := AssembleResult(fullMeta(nil, 1, 25, 0, 0))

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}

func TestAssembleResult_MissingMetadata(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.RawSearchResult)
	}{
		{"page", func(r *domain.RawSearchResult) { r.Page = nil }},
		{"hitsPerPage", func(r *domain.RawSearchResult) { r.HitsPerPage = nil }},
		{"totalPages", func(r *domain.RawSearchResult) { r.TotalPages = nil }},
		{"totalHits", func(r *domain.RawSearchResult) { r.TotalHits = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := fullMeta(nil, 1, 25, 0, 0)
			tt.mutate(raw)

			_, err := AssembleResult(raw)

			assert.ErrorIs(t, err, domain.ErrInvalidResponse)
			assert.ErrorIs(t, err, domain.ErrDomainParse)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestAssembleResult_Nil(t *testing.T) {
	_, err := AssembleResult(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestAssembleResult_InconsistentPages(t *testing.T) {
	_, err := AssembleResult(fullMeta(nil, 1, 25, 3, 26))
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestAssembleResult_PaginationInvariant(t *testing.T) {
	for _, tc := range []struct{ hits, perPage int }{{0, 25}, {1, 25}, {25, 25}, {26, 25}, {1000, 7}} {
		pages := domain.TotalPages(tc.hits, tc.perPage)

		page, err := AssembleResult(fullMeta(nil, 1, tc.perPage, pages, tc.hits))

		require.NoError(t, err)
		assert.Equal(t, (tc.hits+tc.perPage-1)/tc.perPage, page.TotalPages)
	}
}

func TestAssembleResult_BadHit(t *testing.T) {
	tests := []struct {
		name string
		hit  []byte
	}{
		{"not json", []byte("{")},
		{"wrong type", []byte(`{"pid": 5, "videoId": "v"}`)},
		{"missing pid", []byte(`{"videoId": "v", "description": "x"}`)},
		{"missing video id", []byte(`{"pid": "p", "description": "x"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssembleResult(fullMeta([][]byte{tt.hit}, 1, 25, 1, 1))

			assert.ErrorIs(t, err, domain.ErrDomainParse)
			assert.NotErrorIs(t, err, domain.ErrInvalidResponse)
		})
	}
}
