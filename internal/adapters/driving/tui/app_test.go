package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tssearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tssearch/internal/core/domain"
)

type stubSearch struct{}

func (stubSearch) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResultPage, error) {
	return &domain.SearchResultPage{Page: req.Page, PerPage: req.PerPage}, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(&Ports{Search: stubSearch{}})
	require.NoError(t, err)
	return app
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingSearchService)
	assert.NoError(t, (&Ports{Search: stubSearch{}}).Validate())
}

func TestNewApp_RequiresSearch(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestApp_StartsOnMenu(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
	assert.NotNil(t, app.Init())
}

func TestApp_WindowSize(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "tssearch")
}

func TestApp_ViewChanged(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(100, 40)

	for _, view := range []messages.ViewType{
		messages.ViewSearch, messages.ViewRuns, messages.ViewSettings, messages.ViewHelp, messages.ViewMenu,
	} {
		app.Update(messages.ViewChanged{View: view})
		assert.Equal(t, view, app.CurrentView())
		assert.NotEmpty(t, app.View())
	}
}

func TestApp_HelpEscReturnsToMenu(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(100, 40)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "Help")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = app.Update(messages.Quit{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t)
	boom := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: boom})

	assert.Equal(t, boom, app.Err())
}

func TestApp_SearchCompletedRecordsError(t *testing.T) {
	app := newTestApp(t)
	app.SetDimensions(100, 40)
	app.Update(messages.ViewChanged{View: messages.ViewSearch})

	app.Update(messages.SearchCompleted{Err: domain.ErrBadGateway})

	assert.ErrorIs(t, app.Err(), domain.ErrBadGateway)
}
