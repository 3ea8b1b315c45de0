package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

func seedRuns(t *testing.T, n int) *RunStore {
	t.Helper()
	store := NewRunStore()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, store.Save(context.Background(), &domain.IngestRun{
			ID:        fmt.Sprintf("run-%d", i),
			ChannelID: "UCchannel",
			Status:    domain.RunSucceeded,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	return store
}

func TestRunStore_SaveAndGet(t *testing.T) {
	store := seedRuns(t, 1)
	ctx := context.Background()

	run, err := store.Get(ctx, "run-0")
	require.NoError(t, err)
	assert.Equal(t, domain.RunSucceeded, run.Status)

	run.Status = domain.RunFailed
	require.NoError(t, store.Save(ctx, run))
	run, err = store.Get(ctx, "run-0")
	require.NoError(t, err)
	assert.Equal(t, domain.RunFailed, run.Status)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_ListNewestFirst(t *testing.T) {
	store := seedRuns(t, 5)

	runs, err := store.List(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)

	all, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestRunStore_Prune(t *testing.T) {
	store := seedRuns(t, 5)
	ctx := context.Background()

	require.NoError(t, store.Prune(ctx, 2))

	runs, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)

	require.NoError(t, store.Prune(ctx, 10))
	runs, _ = store.List(ctx, 0)
	assert.Len(t, runs, 2)
}
