// Package meilisearch implements the chapter and video index ports on a
// Meilisearch server.
//
// Writes wait for the engine task to finish, so a document is visible to
// Get and Exists as soon as Upsert returns. Engine errors are mapped onto
// the domain error taxonomy in errors.go; compiled query clauses are
// rendered to the Meilisearch filter grammar in filter.go.
package meilisearch
