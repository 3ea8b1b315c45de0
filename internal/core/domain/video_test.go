package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideo_PublishedOrLiveAt(t *testing.T) {
	published := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	live := published.Add(2 * time.Hour)

	upload := Video{PublishedAt: published}
	assert.Equal(t, published, upload.PublishedOrLiveAt())

	stream := Video{PublishedAt: published, ActualStartAt: &live}
	assert.Equal(t, live, stream.PublishedOrLiveAt())

	var zero time.Time
	scheduled := Video{PublishedAt: published, ActualStartAt: &zero}
	assert.Equal(t, published, scheduled.PublishedOrLiveAt())
}

func TestVideo_UniqueTags(t *testing.T) {
	v := Video{Tags: []string{"b", "a", "b", "c", "a"}}
	assert.Equal(t, []string{"b", "a", "c"}, v.UniqueTags())

	empty := Video{}
	assert.Nil(t, empty.UniqueTags())
}

func TestNewVideoDocument(t *testing.T) {
	published := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	v := &Video{
		ID:          "vid",
		Title:       "Title",
		Channel:     Channel{ID: "UC1", Name: "Channel"},
		Thumbnail:   &Thumbnail{URL: "u"},
		PublishedAt: published,
		Tags:        []string{"x", "x"},
	}

	doc := NewVideoDocument(v)

	assert.Equal(t, "vid", doc.ID)
	assert.Equal(t, "UC1", doc.ChannelID)
	assert.Equal(t, "Channel", doc.ChannelTitle)
	assert.Equal(t, "u", doc.ThumbnailURL)
	assert.Equal(t, []string{"x"}, doc.Tags)
	assert.Equal(t, published.Unix(), doc.PublishedAt)
	assert.Nil(t, doc.ActualStartAt)

	live := published.Add(time.Minute)
	v.ActualStartAt = &live
	doc = NewVideoDocument(v)
	require.NotNil(t, doc.ActualStartAt)
	assert.Equal(t, live.Unix(), *doc.ActualStartAt)
}

func TestIngestRun_Duration(t *testing.T) {
	start := time.Now()
	run := IngestRun{StartedAt: start}
	assert.Zero(t, run.Duration())

	run.EndedAt = start.Add(3 * time.Second)
	assert.Equal(t, 3*time.Second, run.Duration())
}
