package driving

import (
	"context"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// IndexStats summarises index contents.
type IndexStats struct {
	Videos   int
	Chapters int
}

// IndexAdminService exposes index maintenance.
type IndexAdminService interface {
	// Setup creates the indexes and applies settings.
	Setup(ctx context.Context) error

	// Chapter returns one chapter document by pid.
	Chapter(ctx context.Context, pid string) (*domain.ChapterDocument, error)

	// Video returns one video document by id.
	Video(ctx context.Context, id string) (*domain.VideoDocument, error)

	// DeleteChapters removes chapters by pid.
	DeleteChapters(ctx context.Context, pids []string) error

	// DeleteVideo removes a video and all its chapters.
	DeleteVideo(ctx context.Context, id string) error

	// Clear empties both indexes.
	Clear(ctx context.Context) error

	// Stats counts stored documents.
	Stats(ctx context.Context) (*IndexStats, error)
}
