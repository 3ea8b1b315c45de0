package meilisearch

import (
	"context"
	"errors"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
)

// Ensure VideoIndex implements the interface.
var _ driven.VideoIndex = (*VideoIndex)(nil)

// VideoIndex stores video documents keyed by id.
type VideoIndex struct {
	client *Client
	uid    string
	idx    indexAPI
}

// UID returns the engine index name.
func (v *VideoIndex) UID() string {
	return v.uid
}

// Upsert adds or replaces documents and waits for the engine to apply them.
func (v *VideoIndex) Upsert(ctx context.Context, docs []domain.VideoDocument) error {
	if len(docs) == 0 {
		return nil
	}
	info, err := v.idx.AddDocumentsWithContext(ctx, docs)
	return v.client.wait(ctx, "upsert videos", info, err)
}

// Exists reports whether id is stored.
func (v *VideoIndex) Exists(ctx context.Context, id string) (bool, error) {
	_, err := v.Get(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Get returns the document with the given id.
func (v *VideoIndex) Get(ctx context.Context, id string) (*domain.VideoDocument, error) {
	var doc domain.VideoDocument
	if err := v.idx.GetDocumentWithContext(ctx, id, nil, &doc); err != nil {
		return nil, wrapError("get video "+id, err)
	}
	return &doc, nil
}

// All returns every video document.
func (v *VideoIndex) All(ctx context.Context) ([]domain.VideoDocument, error) {
	return fetchAll[domain.VideoDocument](ctx, v.idx, "list videos")
}

// Delete removes documents by id.
func (v *VideoIndex) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	info, err := v.idx.DeleteDocumentsWithContext(ctx, ids)
	return v.client.wait(ctx, "delete videos", info, err)
}

// DeleteAll empties the index.
func (v *VideoIndex) DeleteAll(ctx context.Context) error {
	info, err := v.idx.DeleteAllDocumentsWithContext(ctx)
	return v.client.wait(ctx, "clear videos", info, err)
}
