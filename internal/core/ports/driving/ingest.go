package driving

import (
	"context"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// IngestOptions selects what an ingestion run fetches.
type IngestOptions struct {
	// ChannelID is the channel whose uploads are walked.
	ChannelID string

	// Recent limits the run to the newest N uploads. Zero walks every page.
	Recent int

	// Source is recorded on the run for history.
	Source domain.RunSource
}

// IngestService coordinates fetch, chapter extraction and upsert.
type IngestService interface {
	// Fetch walks the provider and returns videos without indexing them.
	Fetch(ctx context.Context, opts IngestOptions) ([]domain.Video, error)

	// Index upserts already fetched videos and their chapters.
	Index(ctx context.Context, opts IngestOptions, videos []domain.Video) (*domain.IngestRun, error)

	// Ingest is Fetch followed by Index.
	Ingest(ctx context.Context, opts IngestOptions) (*domain.IngestRun, error)

	// Status returns progress for a channel.
	Status(ctx context.Context, channelID string) (*IngestStatus, error)

	// Runs lists recorded runs, newest first.
	Runs(ctx context.Context, limit int) ([]domain.IngestRun, error)
}

// IngestStatus represents the current state of an ingestion run.
type IngestStatus struct {
	// ChannelID identifies the channel.
	ChannelID string

	// Running indicates if ingestion is currently in progress.
	Running bool

	// VideosProcessed is the count of videos handled so far.
	VideosProcessed int

	// ErrorCount is the number of videos that failed.
	ErrorCount int
}
