// Package tui provides an interactive terminal user interface for tssearch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"time"

	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI calls.
type Ports struct {
	// Search runs chapter queries. Required.
	Search driving.SearchService

	// Ingest serves run history.
	Ingest driving.IngestService

	// Index serves document counts.
	Index driving.IndexAdminService

	// Settings reads and edits configuration.
	Settings driving.SettingsService

	// Zone is where dates are displayed. Defaults to UTC.
	Zone *time.Location
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
