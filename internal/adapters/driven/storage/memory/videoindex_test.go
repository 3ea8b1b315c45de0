package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

func TestVideoIndex_UpsertAndExists(t *testing.T) {
	idx := NewVideoIndex()
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, []domain.VideoDocument{{ID: "v1", Title: "old"}}))
	require.NoError(t, idx.Upsert(ctx, []domain.VideoDocument{{ID: "v1", Title: "new"}}))

	ok, err := idx.Exists(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = idx.Exists(ctx, "v2")
	require.NoError(t, err)
	assert.False(t, ok)

	doc, err := idx.Get(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "new", doc.Title)

	_, err = idx.Get(ctx, "v2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVideoIndex_AllNewestFirst(t *testing.T) {
	idx := NewVideoIndex()
	ctx := context.Background()
	require.NoError(t, idx.Upsert(ctx, []domain.VideoDocument{
		{ID: "old", PublishedAt: 100},
		{ID: "new", PublishedAt: 300},
		{ID: "mid", PublishedAt: 200},
	}))

	all, err := idx.All(ctx)

	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "old", all[2].ID)
}

func TestVideoIndex_Delete(t *testing.T) {
	idx := NewVideoIndex()
	ctx := context.Background()
	require.NoError(t, idx.Upsert(ctx, []domain.VideoDocument{{ID: "a"}, {ID: "b"}, {ID: "c"}}))

	require.NoError(t, idx.Delete(ctx, []string{"a"}))
	all, _ := idx.All(ctx)
	assert.Len(t, all, 2)

	require.NoError(t, idx.DeleteAll(ctx))
	all, _ = idx.All(ctx)
	assert.Empty(t, all)
}

func TestVideoIndex_UpsertRequiresID(t *testing.T) {
	err := NewVideoIndex().Upsert(context.Background(), []domain.VideoDocument{{Title: "x"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
