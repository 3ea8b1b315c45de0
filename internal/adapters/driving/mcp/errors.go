// Package mcp provides an MCP (Model Context Protocol) server adapter for tssearch.
// It lets AI assistants search video chapters and inspect the indexes.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
