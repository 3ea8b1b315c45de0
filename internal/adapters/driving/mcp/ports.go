package mcp

import (
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls.
type Ports struct {
	// Search runs chapter queries.
	Search driving.SearchService

	// Index serves document lookups and stats. Optional.
	Index driving.IndexAdminService

	// Ingest serves run history. Optional.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
