// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - VideoProvider: Paged access to a channel's uploads (YouTube, JSON dump)
//   - ChapterIndex: Chapter document CRUD and search (Meilisearch)
//   - VideoIndex: Video document CRUD (Meilisearch)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Ingestion run history (SQLite). Without it runs are not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or postprocessor package
package driven
