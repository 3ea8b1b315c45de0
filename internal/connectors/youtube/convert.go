package youtube

import (
	"fmt"
	"time"

	"google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// VideoToDomain converts an API video resource. The snippet part is required;
// liveStreamingDetails is optional.
func VideoToDomain(v *youtube.Video) (domain.Video, error) {
	if v == nil || v.Id == "" {
		return domain.Video{}, fmt.Errorf("%w: video without id", domain.ErrDomainParse)
	}
	if v.Snippet == nil {
		return domain.Video{}, fmt.Errorf("%w: video %s has no snippet", domain.ErrDomainParse, v.Id)
	}

	published, err := parseTime(v.Snippet.PublishedAt)
	if err != nil {
		return domain.Video{}, fmt.Errorf("%w: video %s publishedAt: %w", domain.ErrDomainParse, v.Id, err)
	}

	video := domain.Video{
		ID:          v.Id,
		Title:       v.Snippet.Title,
		Description: v.Snippet.Description,
		Channel: domain.Channel{
			ID:   v.Snippet.ChannelId,
			Name: v.Snippet.ChannelTitle,
		},
		Thumbnail:   thumbnail(v.Snippet.Thumbnails),
		PublishedAt: published,
		Tags:        v.Snippet.Tags,
	}

	if live := v.LiveStreamingDetails; live != nil && live.ActualStartTime != "" {
		start, err := parseTime(live.ActualStartTime)
		if err != nil {
			return domain.Video{}, fmt.Errorf("%w: video %s actualStartTime: %w", domain.ErrDomainParse, v.Id, err)
		}
		video.ActualStartAt = &start
	}
	return video, nil
}

// ItemToDomain converts a playlist item. Items without a resource id
// come back with an empty ResourceID and are skipped by the fetcher's kind filter.
func ItemToDomain(item *youtube.PlaylistItem) (kind, id string) {
	if item == nil || item.Snippet == nil || item.Snippet.ResourceId == nil {
		return "", ""
	}
	return item.Snippet.ResourceId.Kind, item.Snippet.ResourceId.VideoId
}

func thumbnail(details *youtube.ThumbnailDetails) *domain.Thumbnail {
	if details == nil || details.Default == nil || details.Default.Url == "" {
		return nil
	}
	return &domain.Thumbnail{
		URL:    details.Default.Url,
		Width:  int(details.Default.Width),
		Height: int(details.Default.Height),
	}
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
