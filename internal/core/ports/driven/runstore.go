package driven

import (
	"context"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// RunStore persists ingestion run history.
type RunStore interface {
	// Save stores or updates a run by ID.
	Save(ctx context.Context, run *domain.IngestRun) error

	// Get retrieves a run, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.IngestRun, error)

	// List returns the most recent runs first, at most limit (0 = all).
	List(ctx context.Context, limit int) ([]domain.IngestRun, error)

	// Prune keeps only the newest keep runs.
	Prune(ctx context.Context, keep int) error
}
