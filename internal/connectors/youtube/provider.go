package youtube

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
	"github.com/custodia-labs/tssearch/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.VideoProvider = (*Provider)(nil)

// Provider reads channel uploads through the YouTube Data API.
type Provider struct {
	svc     *youtube.Service
	limiter *RateLimiter
}

// NewProvider creates a provider. A nil limiter allows one call per second.
func NewProvider(svc *youtube.Service, limiter *RateLimiter) *Provider {
	if limiter == nil {
		limiter = NewRateLimiter(1)
	}
	return &Provider{svc: svc, limiter: limiter}
}

// UploadsCollection returns the channel's uploads playlist id.
func (p *Provider) UploadsCollection(ctx context.Context, channelID string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := p.svc.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return "", p.wrap(err)
	}

	for _, ch := range resp.Items {
		if ch.ContentDetails == nil || ch.ContentDetails.RelatedPlaylists == nil {
			continue
		}
		if uploads := ch.ContentDetails.RelatedPlaylists.Uploads; uploads != "" {
			return uploads, nil
		}
	}
	return "", fmt.Errorf("%w: channel %s has no uploads playlist", domain.ErrInvalidInput, channelID)
}

// ListItems returns one page of the playlist.
func (p *Provider) ListItems(ctx context.Context, collectionID, pageToken string, pageSize int) (*driven.ItemPage, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := p.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(collectionID).
		MaxResults(int64(min(max(pageSize, 1), driven.MaxPageSize))).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, p.wrap(err)
	}

	page := &driven.ItemPage{
		Items:         make([]driven.CollectionItem, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		kind, id := ItemToDomain(item)
		page.Items = append(page.Items, driven.CollectionItem{Kind: kind, ResourceID: id})
	}
	return page, nil
}

// GetVideos fetches snippet and live details for up to MaxPageSize ids.
func (p *Provider) GetVideos(ctx context.Context, ids []string) ([]domain.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > driven.MaxPageSize {
		return nil, fmt.Errorf("%w: at most %d ids per call, got %d", domain.ErrInvalidInput, driven.MaxPageSize, len(ids))
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := p.svc.Videos.List([]string{"snippet", "liveStreamingDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, p.wrap(err)
	}

	videos := make([]domain.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		v, err := VideoToDomain(item)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// wrap maps err and pauses the limiter when the API asked us to slow down.
func (p *Provider) wrap(err error) error {
	wrapped := WrapError(err)
	if errors.Is(wrapped, domain.ErrRateLimited) {
		wait := RetryAfter(err)
		logger.Warn("youtube rate limited, pausing calls (retry after %s)", wait)
		p.limiter.RecordRateLimit(wait)
	}
	return wrapped
}
