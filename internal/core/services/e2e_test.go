package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tssearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
	"github.com/custodia-labs/tssearch/internal/postprocessors/chapters"
)

func TestIngestThenSearch_MemoryEngine(t *testing.T) {
	ctx := context.Background()
	videos := memory.NewVideoIndex()
	chapterIndex := memory.NewChapterIndex()
	runs := memory.NewRunStore()

	provider := describedVideos(map[string]string{
		"v1": "01:10 Intro. 12:23 Main topic",
		"v2": "no chapters here",
	})
	ingest := NewIngestService(NewFetcher(provider, WithBackoff(noSleepBackoff())),
		chapters.New(), videos, chapterIndex, runs)

	run, err := ingest.Ingest(ctx, driving.IngestOptions{ChannelID: "UCchannel"})
	require.NoError(t, err)
	assert.Equal(t, domain.RunSucceeded, run.Status)
	assert.Equal(t, 2, run.ChaptersIndexed)

	search := NewSearchService(chapterIndex, NewQueryCompiler(domain.SearchSettings{DayOffsetHours: 9}.DayZone()))

	page, err := search.Search(ctx, domain.NewSearchRequest("Main"))
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalHits)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 1)

	hit := page.Items[0]
	assert.Equal(t, domain.ChapterID("v1", 743, "Main topic"), hit.PID)
	assert.Equal(t, "v1", hit.VideoID)
	assert.Equal(t, 743, hit.ElapsedTime)

	page, err = search.Search(ctx, domain.NewSearchRequest("missing"))
	require.NoError(t, err)
	assert.Zero(t, page.TotalHits)
	assert.Empty(t, page.Items)

	history, err := ingest.Runs(ctx, 5)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, run.ID, history[0].ID)
}
