package cli

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tssearch/internal/connectors/jsonfile"
	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/services"
)

func withCredentials() map[string]any {
	return map[string]any{
		services.KeyYouTubeAPIKey:  "key",
		services.KeyYouTubeChannel: "UCstored",
	}
}

func TestFetchCmd_DefaultsFromSettings(t *testing.T) {
	ts := setupTestServices(t, withCredentials())

	out, err := execute(t, "fetch")

	require.NoError(t, err)
	opts := ts.ingest.lastOpts()
	assert.Equal(t, "UCstored", opts.ChannelID)
	assert.Equal(t, domain.SourceProvider, opts.Source)
	assert.Equal(t, domain.DefaultSettings().Ingest.Recent, opts.Recent)
	assert.Equal(t, 1, ts.ingest.ingests)
	assert.Contains(t, out, "Fetching channel UCstored from provider...")
	assert.Contains(t, out, "Run 01234567 succeeded")
}

func TestFetchCmd_All(t *testing.T) {
	ts := setupTestServices(t, withCredentials())

	_, err := execute(t, "fetch", "--all", "--channel", "UCother")

	require.NoError(t, err)
	assert.Equal(t, 0, ts.ingest.lastOpts().Recent)
	assert.Equal(t, "UCother", ts.ingest.lastOpts().ChannelID)
}

func TestFetchCmd_Recent(t *testing.T) {
	ts := setupTestServices(t, withCredentials())

	_, err := execute(t, "fetch", "--recent", "3")

	require.NoError(t, err)
	assert.Equal(t, 3, ts.ingest.lastOpts().Recent)
}

func TestFetchCmd_AllRecentExclusive(t *testing.T) {
	setupTestServices(t, withCredentials())

	_, err := execute(t, "fetch", "--all", "--recent", "3")

	assert.Error(t, err)
}

func TestFetchCmd_RequiresCredentials(t *testing.T) {
	ts := setupTestServices(t, map[string]any{services.KeyYouTubeChannel: "UC"})

	_, err := execute(t, "fetch")

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Zero(t, ts.ingest.ingests)
}

func TestFetchCmd_RequiresChannel(t *testing.T) {
	setupTestServices(t, map[string]any{services.KeyYouTubeAPIKey: "key"})

	_, err := execute(t, "fetch")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFetchCmd_InJSON(t *testing.T) {
	ts := setupTestServices(t, nil)

	out, err := execute(t, "fetch", "--in-json", "dump.json")

	require.NoError(t, err)
	opts := ts.ingest.lastOpts()
	assert.Equal(t, domain.SourceDump, opts.Source)
	assert.Equal(t, jsonfile.AnyChannel, opts.ChannelID)
	assert.Contains(t, out, "Fetching all channels from dump")
}

func TestFetchCmd_OutJSON(t *testing.T) {
	ts := setupTestServices(t, withCredentials())
	ts.ingest.videos = []domain.Video{
		{ID: "v1", Title: "First", PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "v2", Title: "Second", PublishedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	path := filepath.Join(t.TempDir(), "out.json")

	out, err := execute(t, "fetch", "--out-json", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 videos to "+path)
	assert.Zero(t, ts.ingest.ingests)

	videos, err := jsonfile.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "Second", videos[1].Title)
}

func TestFetchCmd_WatchNeedsInJSON(t *testing.T) {
	setupTestServices(t, withCredentials())

	_, err := execute(t, "fetch", "--watch")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFetchCmd_IngestFailure(t *testing.T) {
	ts := setupTestServices(t, withCredentials())
	ts.ingest.err = errors.Join(domain.ErrBadGateway)

	out, err := execute(t, "fetch")

	assert.ErrorIs(t, err, domain.ErrBadGateway)
	assert.Contains(t, out, "failed")
}

func TestShortIDAndChannelLabel(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "01234567", shortID("0123456789"))
	assert.Equal(t, "all channels", channelLabel(jsonfile.AnyChannel))
	assert.Equal(t, "channel UC1", channelLabel("UC1"))
}
