package domain

import "time"

// Channel identifies the account that owns a video.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Thumbnail is the default preview image of a video.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Video is a provider video record as fetched.
// It is immutable once fetched; a re-fetch overwrites it wholesale.
type Video struct {
	// ID is the opaque provider-assigned identifier.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Description is the free-text description that chapters are extracted from.
	Description string `json:"description"`

	// Channel is the owning channel.
	Channel Channel `json:"channel"`

	// Thumbnail is optional.
	Thumbnail *Thumbnail `json:"thumbnail,omitempty"`

	// PublishedAt is when the video was published.
	PublishedAt time.Time `json:"publishedAt"`

	// ActualStartAt is when the stream went live, nil for uploads.
	ActualStartAt *time.Time `json:"actualStartAt,omitempty"`

	// Tags may contain duplicates; treat as a set.
	Tags []string `json:"tags,omitempty"`
}

// PublishedOrLiveAt returns the live start time when present, otherwise
// the publish time. Search results are ordered by this instant.
func (v *Video) PublishedOrLiveAt() time.Time {
	if v.ActualStartAt != nil && !v.ActualStartAt.IsZero() {
		return *v.ActualStartAt
	}
	return v.PublishedAt
}

// UniqueTags returns the tags with duplicates removed, first occurrence wins.
func (v *Video) UniqueTags() []string {
	if len(v.Tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(v.Tags))
	out := make([]string, 0, len(v.Tags))
	for _, t := range v.Tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// VideoDocument is the projection stored in the video index.
type VideoDocument struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	ChannelID     string   `json:"channelId"`
	ChannelTitle  string   `json:"channelTitle"`
	ThumbnailURL  string   `json:"thumbnailUrl,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	PublishedAt   int64    `json:"publishedAt"`
	ActualStartAt *int64   `json:"actualStartAt,omitempty"`
}

// NewVideoDocument projects a video for the video index.
func NewVideoDocument(v *Video) VideoDocument {
	doc := VideoDocument{
		ID:           v.ID,
		Title:        v.Title,
		ChannelID:    v.Channel.ID,
		ChannelTitle: v.Channel.Name,
		Tags:         v.UniqueTags(),
		PublishedAt:  v.PublishedAt.Unix(),
	}
	if v.Thumbnail != nil {
		doc.ThumbnailURL = v.Thumbnail.URL
	}
	if v.ActualStartAt != nil {
		ts := v.ActualStartAt.Unix()
		doc.ActualStartAt = &ts
	}
	return doc
}
