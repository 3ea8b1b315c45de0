// Package services implements the driving port interfaces.
// Services hold the ingestion and search logic and orchestrate calls
// to driven ports (providers, indexes, run stores).
//
// Services never talk to YouTube or Meilisearch directly.
package services
