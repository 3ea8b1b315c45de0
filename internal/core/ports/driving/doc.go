// Package driving holds the ports the CLI, TUI, HTTP API and MCP server
// call into: search, ingestion, index administration and settings.
// internal/core/services provides the implementations.
package driving
