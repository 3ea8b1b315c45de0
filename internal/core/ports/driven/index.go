package driven

import (
	"context"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// ChapterIndex stores chapter documents keyed by pid and answers searches.
// Backed by Meilisearch.
type ChapterIndex interface {
	// Upsert adds or replaces documents by pid. Each call is sent immediately.
	Upsert(ctx context.Context, docs []domain.ChapterDocument) error

	// Get returns a document by pid, or domain.ErrNotFound.
	Get(ctx context.Context, pid string) (*domain.ChapterDocument, error)

	// All returns every stored document.
	All(ctx context.Context) ([]domain.ChapterDocument, error)

	// Delete removes documents by pid.
	Delete(ctx context.Context, pids []string) error

	// DeleteByVideo removes every chapter of a video.
	DeleteByVideo(ctx context.Context, videoID string) error

	// DeleteAll empties the index.
	DeleteAll(ctx context.Context) error

	// Search runs a compiled query and returns raw hits plus pagination metadata.
	Search(ctx context.Context, q domain.EngineQuery) (*domain.RawSearchResult, error)

	// Health returns domain.ErrServiceUnavailable when the engine cannot serve.
	Health(ctx context.Context) error
}

// VideoIndex stores video documents keyed by id.
type VideoIndex interface {
	// Upsert adds or replaces documents by id.
	Upsert(ctx context.Context, docs []domain.VideoDocument) error

	// Exists reports whether a video id is stored.
	Exists(ctx context.Context, id string) (bool, error)

	// Get returns a document by id, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.VideoDocument, error)

	// All returns every stored document.
	All(ctx context.Context) ([]domain.VideoDocument, error)

	// Delete removes documents by id.
	Delete(ctx context.Context, ids []string) error

	// DeleteAll empties the index.
	DeleteAll(ctx context.Context) error
}

// IndexSetup creates the engine-side indexes and applies their settings.
type IndexSetup interface {
	Setup(ctx context.Context) error
}
