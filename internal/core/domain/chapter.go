package domain

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"strings"
)

// Chapter is a timestamped marker found in a video description.
// It has no identity of its own until ID is called.
type Chapter struct {
	// VideoID is the owning video.
	VideoID string

	// ElapsedSeconds is the offset into the video.
	ElapsedSeconds int

	// Label is the trimmed marker text.
	Label string
}

// ID returns the idempotency key of the chapter.
func (c Chapter) ID() string {
	return ChapterID(c.VideoID, c.ElapsedSeconds, c.Label)
}

// ChapterID derives "{videoID}-{elapsed}-{hex(sha224(label))}".
// The label is trimmed first so surrounding whitespace never changes the key.
func ChapterID(videoID string, elapsedSeconds int, label string) string {
	sum := sha256.Sum224([]byte(strings.TrimSpace(label)))
	return fmt.Sprintf("%s-%d-%x", videoID, elapsedSeconds, sum)
}

// VideoDetails is the snapshot of video fields denormalised into each chapter document.
type VideoDetails struct {
	VideoTitle    string   `json:"videoTitle,omitempty"`
	VideoTags     []string `json:"videoTags,omitempty"`
	ThumbnailURL  string   `json:"thumbnailUrl,omitempty"`
	PublishedAt   *int64   `json:"publishedAt,omitempty"`
	ActualStartAt *int64   `json:"actualStartAt,omitempty"`
}

// ChapterDocument is the indexed form of a chapter.
// Timestamps are unix seconds.
type ChapterDocument struct {
	PID               string        `json:"pid"`
	VideoID           string        `json:"videoId"`
	Description       string        `json:"description"`
	ElapsedTime       int           `json:"elapsedTime"`
	PublishedOrLiveAt int64         `json:"publishedOrLiveAt,omitempty"`
	VideoDetails      *VideoDetails `json:"videoDetails,omitempty"`
}

// NewChapterDocument combines a chapter with a snapshot of its video.
func NewChapterDocument(c Chapter, v *Video) ChapterDocument {
	published := v.PublishedAt.Unix()
	details := &VideoDetails{
		VideoTitle:  v.Title,
		VideoTags:   v.UniqueTags(),
		PublishedAt: &published,
	}
	if v.Thumbnail != nil {
		details.ThumbnailURL = v.Thumbnail.URL
	}
	if v.ActualStartAt != nil {
		live := v.ActualStartAt.Unix()
		details.ActualStartAt = &live
	}

	return ChapterDocument{
		PID:               c.ID(),
		VideoID:           c.VideoID,
		Description:       c.Label,
		ElapsedTime:       c.ElapsedSeconds,
		PublishedOrLiveAt: v.PublishedOrLiveAt().Unix(),
		VideoDetails:      details,
	}
}

// WatchURL links to the video at the chapter offset.
func (d ChapterDocument) WatchURL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%ds", url.QueryEscape(d.VideoID), d.ElapsedTime)
}

// Timestamp renders ElapsedTime the way descriptions write it.
func (d ChapterDocument) Timestamp() string {
	return FormatElapsed(d.ElapsedTime)
}

// FormatElapsed renders seconds as M:SS, or H:MM:SS from one hour up.
func FormatElapsed(sec int) string {
	h, m, s := sec/3600, sec/60%60, sec%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
