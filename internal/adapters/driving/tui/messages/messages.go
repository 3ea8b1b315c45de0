// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

// SearchCompleted carries one page of chapter hits back to the model.
type SearchCompleted struct {
	Page *domain.SearchResultPage
	Err  error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the chapter search view.
	ViewSearch
	// ViewRuns shows ingestion history and index counts.
	ViewRuns
	// ViewSettings shows the effective configuration.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewRuns:
		return "runs"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// RunsLoaded carries recent ingestion runs.
type RunsLoaded struct {
	Runs []domain.IngestRun
	Err  error
}

// StatsLoaded carries index document counts.
type StatsLoaded struct {
	Stats *driving.IndexStats
	Err   error
}

// SettingsLoaded carries the effective settings.
type SettingsLoaded struct {
	Settings *domain.Settings
	Path     string
	Err      error
}
