// Package domain defines the core business entities for tssearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Video: A provider video record with its channel and live metadata
//   - Chapter: A timestamped marker extracted from a video description
//   - ChapterDocument: The denormalised chapter projection stored by the search engine
//   - SearchRequest / SearchResultPage: The search contract
//   - EngineQuery: An engine-agnostic compiled query built from typed clauses
//   - IngestRun: The record of one ingestion pass
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
