package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
	"github.com/custodia-labs/tssearch/internal/logger"
)

// Fetcher walks a channel's upload collection page by page.
// Pages are requested strictly in continuation order; each page costs one
// item listing and one batched detail call, both retried under Backoff.
type Fetcher struct {
	provider driven.VideoProvider
	backoff  Backoff
	pageSize int
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithBackoff replaces the retry policy.
func WithBackoff(b Backoff) FetcherOption {
	return func(f *Fetcher) { f.backoff = b }
}

// WithPageSize sets the requested page size, capped at driven.MaxPageSize.
func WithPageSize(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.pageSize = min(n, driven.MaxPageSize)
		}
	}
}

// NewFetcher creates a fetcher over provider.
func NewFetcher(provider driven.VideoProvider, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		provider: provider,
		backoff:  DefaultBackoff(),
		pageSize: driven.MaxPageSize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll returns every upload of the channel. Any page that exhausts its
// retries fails the whole walk and nothing is returned.
func (f *Fetcher) FetchAll(ctx context.Context, channelID string) ([]domain.Video, error) {
	return f.drain(f.Stream(ctx, channelID, 0))
}

// FetchRecent returns at most maxCount of the newest uploads.
func (f *Fetcher) FetchRecent(ctx context.Context, channelID string, maxCount int) ([]domain.Video, error) {
	if maxCount <= 0 {
		return nil, fmt.Errorf("%w: recent count must be positive", domain.ErrInvalidInput)
	}
	return f.drain(f.Stream(ctx, channelID, maxCount))
}

func (f *Fetcher) drain(videos <-chan domain.Video, errs <-chan error) ([]domain.Video, error) {
	var out []domain.Video
	for v := range videos {
		out = append(out, v)
	}
	if err := <-errs; err != nil {
		return nil, err
	}
	return out, nil
}

// Stream yields videos as pages arrive. maxCount of zero means no limit.
// Both channels are closed when the walk ends; errs carries at most one error.
// Each call starts a fresh walk from the first page.
func (f *Fetcher) Stream(ctx context.Context, channelID string, maxCount int) (<-chan domain.Video, <-chan error) {
	videos := make(chan domain.Video)
	errs := make(chan error, 1)

	go func() {
		defer close(videos)
		defer close(errs)

		if err := f.walk(ctx, channelID, maxCount, videos); err != nil {
			errs <- err
		}
	}()

	return videos, errs
}

//nolint:gocyclo // Sequential page walk with early exits
func (f *Fetcher) walk(ctx context.Context, channelID string, maxCount int, out chan<- domain.Video) error {
	if channelID == "" {
		return fmt.Errorf("%w: channel id is required", domain.ErrInvalidInput)
	}

	var collection string
	err := f.backoff.Do(ctx, "resolve uploads collection", func(ctx context.Context) error {
		var err error
		collection, err = f.provider.UploadsCollection(ctx, channelID)
		return err
	})
	if err != nil {
		return err
	}
	logger.Debug("Channel %s uploads collection: %s", channelID, collection)

	pageSize := f.pageSize
	if maxCount > 0 {
		pageSize = min(pageSize, maxCount)
	}

	seen := make(map[string]struct{})
	sent := 0
	token := ""
	for pageNum := 1; ; pageNum++ {
		var page *driven.ItemPage
		err := f.backoff.Do(ctx, fmt.Sprintf("list page %d", pageNum), func(ctx context.Context) error {
			var err error
			page, err = f.provider.ListItems(ctx, collection, token, pageSize)
			return err
		})
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(page.Items))
		for _, item := range page.Items {
			if item.Kind != driven.VideoKind {
				logger.Debug("Skipping %s item %s", item.Kind, item.ResourceID)
				continue
			}
			if _, dup := seen[item.ResourceID]; dup {
				continue
			}
			seen[item.ResourceID] = struct{}{}
			ids = append(ids, item.ResourceID)
			if maxCount > 0 && sent+len(ids) >= maxCount {
				break
			}
		}

		if len(ids) > 0 {
			details, err := f.details(ctx, pageNum, ids)
			if err != nil {
				return err
			}
			for _, v := range details {
				select {
				case out <- v:
					sent++
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		logger.Debug("Page %d: %d items, %d videos so far", pageNum, len(page.Items), sent)

		if maxCount > 0 && sent >= maxCount {
			return nil
		}
		if page.NextPageToken == "" {
			return nil
		}
		token = page.NextPageToken
	}
}

// details fetches one page of ids and returns them in collection order.
// Ids the provider did not return (private or deleted) are skipped.
func (f *Fetcher) details(ctx context.Context, pageNum int, ids []string) ([]domain.Video, error) {
	var videos []domain.Video
	err := f.backoff.Do(ctx, fmt.Sprintf("get videos of page %d", pageNum), func(ctx context.Context) error {
		var err error
		videos, err = f.provider.GetVideos(ctx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	ordered := make([]domain.Video, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			logger.Warn("Video %s listed but not returned by provider", id)
			continue
		}
		ordered = append(ordered, v)
	}
	return ordered, nil
}
