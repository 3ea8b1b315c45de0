package driving

import (
	"context"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// SearchService provides chapter search to external actors.
type SearchService interface {
	// Search validates, compiles and executes a request.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResultPage, error)
}
