package runs

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

type mockIngest struct {
	driving.IngestService
	runs  []domain.IngestRun
	err   error
	limit int
}

func (m *mockIngest) Runs(_ context.Context, limit int) ([]domain.IngestRun, error) {
	m.limit = limit
	return m.runs, m.err
}

type mockIndex struct {
	driving.IndexAdminService
	stats *driving.IndexStats
	err   error
}

func (m *mockIndex) Stats(context.Context) (*driving.IndexStats, error) {
	return m.stats, m.err
}

func sampleRuns() []domain.IngestRun {
	start := time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC)
	return []domain.IngestRun{
		{
			ID: "r2", ChannelID: "UCx", Source: domain.SourceProvider, Status: domain.RunFailed,
			VideosIndexed: 4, ChaptersIndexed: 20, Failures: 1, Error: "video v5: bad gateway",
			StartedAt: start.Add(time.Hour), EndedAt: start.Add(time.Hour + 90*time.Second),
		},
		{
			ID: "r1", ChannelID: "UCx", Source: domain.SourceDump, Status: domain.RunSucceeded,
			VideosIndexed: 10, ChaptersIndexed: 55, StartedAt: start, EndedAt: start.Add(time.Minute),
		},
	}
}

// load runs every command Init returns and feeds the messages back.
func load(t *testing.T, v *View) {
	t.Helper()
	cmd := v.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				v.Update(c())
			}
		}
		return
	}
	v.Update(msg)
}

func TestView_LoadsRunsAndStats(t *testing.T) {
	ingest := &mockIngest{runs: sampleRuns()}
	index := &mockIndex{stats: &driving.IndexStats{Videos: 14, Chapters: 75}}
	v := NewView(nil, ingest, index, time.FixedZone("UTC+9", 9*60*60))
	v.SetDimensions(120, 30)

	load(t, v)

	assert.Equal(t, Limit, ingest.limit)
	require.Len(t, v.Runs(), 2)
	assert.NoError(t, v.Err())

	out := v.View()
	assert.Contains(t, out, "14 videos, 75 chapters indexed")
	assert.Contains(t, out, "2024-05-01 11:00")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "1m30s")
	assert.Contains(t, out, "video v5: bad gateway", "selected run shows its error")
}

func TestView_Navigation(t *testing.T) {
	v := NewView(nil, &mockIngest{runs: sampleRuns()}, nil, nil)
	v.SetDimensions(120, 30)
	load(t, v)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, "r1", v.SelectedRun().ID)
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "r1", v.SelectedRun().ID)
	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "r2", v.SelectedRun().ID)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.NotNil(t, cmd)

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil, &mockIngest{}, nil, nil)
	v.SetDimensions(120, 30)
	load(t, v)

	assert.Nil(t, v.SelectedRun())
	assert.Contains(t, v.View(), "No runs recorded yet")
}

func TestView_Errors(t *testing.T) {
	v := NewView(nil, &mockIngest{err: errors.New("database locked")},
		&mockIndex{err: domain.ErrServiceUnavailable}, nil)
	v.SetDimensions(120, 30)
	load(t, v)

	out := v.View()
	assert.Contains(t, out, "Error: database locked")
	assert.Contains(t, out, "Index stats unavailable")
}

func TestView_NoIngestService(t *testing.T) {
	v := NewView(nil, nil, nil, nil)
	assert.Equal(t, "Initialising...", v.View())
	v.SetDimensions(80, 24)

	load(t, v)

	assert.ErrorIs(t, v.Err(), ErrNoIngestService)
}
