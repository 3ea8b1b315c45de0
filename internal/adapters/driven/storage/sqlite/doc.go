// Package sqlite persists ingestion run history in SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It implements driven.RunStore.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each up migration records its own version in
// schema_migrations so it runs exactly once.
//
// # Data Location
//
// By default, the database is stored at ~/.tssearch/data/runs.db
package sqlite
