package jsonfile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
)

func writeDump(t *testing.T, videos []domain.Video) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "videos.json")
	require.NoError(t, WriteFile(path, videos))
	return path
}

func TestProvider_Pages(t *testing.T) {
	videos := []domain.Video{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "a", Title: "later copy"}}
	p := NewProvider(writeDump(t, videos))
	ctx := context.Background()

	collection, err := p.UploadsCollection(ctx, AnyChannel)
	require.NoError(t, err)

	first, err := p.ListItems(ctx, collection, "", 2)
	require.NoError(t, err)
	assert.Equal(t, []driven.CollectionItem{
		{Kind: driven.VideoKind, ResourceID: "a"},
		{Kind: driven.VideoKind, ResourceID: "b"},
	}, first.Items)
	assert.Equal(t, "2", first.NextPageToken)

	second, err := p.ListItems(ctx, collection, first.NextPageToken, 2)
	require.NoError(t, err)
	assert.Equal(t, []driven.CollectionItem{{Kind: driven.VideoKind, ResourceID: "c"}}, second.Items)
	assert.Empty(t, second.NextPageToken)

	got, err := p.GetVideos(ctx, []string{"c", "missing", "a"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "later copy", got[1].Title, "last copy in the dump wins")
}

func TestProvider_ChannelFilter(t *testing.T) {
	p := NewProvider(writeDump(t, sampleVideos()))
	ctx := context.Background()

	collection, err := p.UploadsCollection(ctx, "UCb")
	require.NoError(t, err)

	page, err := p.ListItems(ctx, collection, "", 50)
	require.NoError(t, err)
	assert.Equal(t, []driven.CollectionItem{{Kind: driven.VideoKind, ResourceID: "v2"}}, page.Items)
}

func TestProvider_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewProvider(filepath.Join(t.TempDir(), "none.json")).UploadsCollection(ctx, AnyChannel)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p := NewProvider(writeDump(t, sampleVideos()))
	_, err = p.ListItems(ctx, AnyChannel, "", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "not loaded yet")

	collection, err := p.UploadsCollection(ctx, AnyChannel)
	require.NoError(t, err)
	_, err = p.ListItems(ctx, collection, "page-2", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = p.ListItems(ctx, AnyChannel, "", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "channel id is not a collection id")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = p.GetVideos(cancelled, []string{"v1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProvider_OverlappingWalks(t *testing.T) {
	path := writeDump(t, []domain.Video{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	p := NewProvider(path)
	ctx := context.Background()

	first, err := p.UploadsCollection(ctx, AnyChannel)
	require.NoError(t, err)
	page, err := p.ListItems(ctx, first, "", 2)
	require.NoError(t, err)
	require.Equal(t, "2", page.NextPageToken)

	require.NoError(t, WriteFile(path, []domain.Video{{ID: "x"}, {ID: "y"}, {ID: "z"}, {ID: "w"}}))
	second, err := p.UploadsCollection(ctx, AnyChannel)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	rest, err := p.ListItems(ctx, first, page.NextPageToken, 2)
	require.NoError(t, err)
	assert.Equal(t, []driven.CollectionItem{{Kind: driven.VideoKind, ResourceID: "c"}}, rest.Items)
	assert.Empty(t, rest.NextPageToken)

	other, err := p.ListItems(ctx, second, "", 50)
	require.NoError(t, err)
	assert.Len(t, other.Items, 4)

	got, err := p.GetVideos(ctx, []string{"c", "z"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "z", got[1].ID)
}

func TestProvider_OldSnapshotsEvicted(t *testing.T) {
	p := NewProvider(writeDump(t, sampleVideos()))
	ctx := context.Background()

	oldest, err := p.UploadsCollection(ctx, AnyChannel)
	require.NoError(t, err)
	for i := 0; i < maxSnapshots; i++ {
		_, err = p.UploadsCollection(ctx, AnyChannel)
		require.NoError(t, err)
	}

	_, err = p.ListItems(ctx, oldest, "", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, p.snapshots, maxSnapshots)
}
