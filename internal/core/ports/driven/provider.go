package driven

import (
	"context"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// MaxPageSize is the largest page a provider is asked for.
const MaxPageSize = 50

// VideoKind is the resource kind of a playlist item that refers to a video.
const VideoKind = "youtube#video"

// VideoProvider is the external source of video records.
// Implementations perform exactly one remote call per method and never retry;
// retrying is the fetcher's job.
type VideoProvider interface {
	// UploadsCollection resolves the channel's default upload collection.
	// Returns domain.ErrInvalidInput when the channel has none.
	UploadsCollection(ctx context.Context, channelID string) (string, error)

	// ListItems returns one page of the collection. An empty pageToken
	// requests the first page; pageSize is at most MaxPageSize.
	ListItems(ctx context.Context, collectionID, pageToken string, pageSize int) (*ItemPage, error)

	// GetVideos fetches full details for the given ids in one call.
	// Unknown ids are omitted from the result.
	GetVideos(ctx context.Context, ids []string) ([]domain.Video, error)
}

// CollectionItem is an entry of an upload collection.
type CollectionItem struct {
	// Kind is the resource kind, VideoKind for videos.
	Kind string

	// ResourceID is the id of the referenced resource.
	ResourceID string
}

// ItemPage is one page of collection items.
type ItemPage struct {
	Items []CollectionItem

	// NextPageToken is empty on the last page.
	NextPageToken string
}
