package meilisearch

import (
	"context"
	"encoding/json"
	"fmt"

	ms "github.com/meilisearch/meilisearch-go"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
	"github.com/custodia-labs/tssearch/internal/logger"
)

// Ensure ChapterIndex implements the interface.
var _ driven.ChapterIndex = (*ChapterIndex)(nil)

// ChapterIndex stores chapter documents keyed by pid.
type ChapterIndex struct {
	client *Client
	uid    string
	idx    indexAPI
}

// UID returns the engine index name.
func (c *ChapterIndex) UID() string {
	return c.uid
}

// Upsert adds or replaces documents and waits for the engine to apply them.
func (c *ChapterIndex) Upsert(ctx context.Context, docs []domain.ChapterDocument) error {
	if len(docs) == 0 {
		return nil
	}
	info, err := c.idx.AddDocumentsWithContext(ctx, docs)
	return c.client.wait(ctx, "upsert chapters", info, err)
}

// Get returns the document with the given pid.
func (c *ChapterIndex) Get(ctx context.Context, pid string) (*domain.ChapterDocument, error) {
	var doc domain.ChapterDocument
	if err := c.idx.GetDocumentWithContext(ctx, pid, nil, &doc); err != nil {
		return nil, wrapError("get chapter "+pid, err)
	}
	return &doc, nil
}

// All returns every chapter document.
func (c *ChapterIndex) All(ctx context.Context) ([]domain.ChapterDocument, error) {
	return fetchAll[domain.ChapterDocument](ctx, c.idx, "list chapters")
}

// Delete removes documents by pid.
func (c *ChapterIndex) Delete(ctx context.Context, pids []string) error {
	if len(pids) == 0 {
		return nil
	}
	info, err := c.idx.DeleteDocumentsWithContext(ctx, pids)
	return c.client.wait(ctx, "delete chapters", info, err)
}

// DeleteByVideo removes every chapter of a video.
func (c *ChapterIndex) DeleteByVideo(ctx context.Context, videoID string) error {
	filter := domain.AttrVideoID + " = " + quote(videoID)
	info, err := c.idx.DeleteDocumentsByFilterWithContext(ctx, filter)
	return c.client.wait(ctx, "delete chapters of "+videoID, info, err)
}

// DeleteAll empties the index.
func (c *ChapterIndex) DeleteAll(ctx context.Context) error {
	info, err := c.idx.DeleteAllDocumentsWithContext(ctx)
	return c.client.wait(ctx, "clear chapters", info, err)
}

// Health checks the shared engine.
func (c *ChapterIndex) Health(ctx context.Context) error {
	return c.client.Health(ctx)
}

// searchResponse is the subset of the engine's search response we read.
// Metadata fields are pointers so a missing field stays nil.
type searchResponse struct {
	Hits        []json.RawMessage `json:"hits"`
	Page        *int              `json:"page"`
	HitsPerPage *int              `json:"hitsPerPage"`
	TotalPages  *int              `json:"totalPages"`
	TotalHits   *int              `json:"totalHits"`
}

// Search runs a compiled query.
func (c *ChapterIndex) Search(ctx context.Context, q domain.EngineQuery) (*domain.RawSearchResult, error) {
	req := &ms.SearchRequest{
		AttributesToSearchOn: q.SearchOn,
		AttributesToRetrieve: q.Attributes,
		Sort:                 renderSort(q.Sort),
		Page:                 int64(q.Page),
		HitsPerPage:          int64(q.PerPage),
		Limit:                int64(q.Limit),
	}
	if filter := renderFilter(q.Clauses); len(filter) > 0 {
		req.Filter = filter
	}
	logger.Debug("meilisearch search %s: q=%q filter=%v", c.uid, q.Text, req.Filter)

	raw, err := c.idx.SearchRawWithContext(ctx, q.Text, req)
	if err != nil {
		return nil, wrapError("search", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("meilisearch search: %w: empty response", domain.ErrInvalidResponse)
	}

	var resp searchResponse
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, fmt.Errorf("meilisearch search: %w: %w", domain.ErrDomainParse, err)
	}

	hits := make([][]byte, len(resp.Hits))
	for i, h := range resp.Hits {
		hits[i] = h
	}
	return &domain.RawSearchResult{
		Hits:        hits,
		Page:        resp.Page,
		HitsPerPage: resp.HitsPerPage,
		TotalPages:  resp.TotalPages,
		TotalHits:   resp.TotalHits,
	}, nil
}
