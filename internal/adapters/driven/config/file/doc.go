// Package file provides the on-disk configuration adapter.
//
// The configuration lives in a TOML file under the tssearch config
// directory. Keys are exposed in dot notation, so the table
//
//	[meilisearch]
//	url = "http://localhost:7700"
//
// is read back as "meilisearch.url". EnvStore overlays TSS_* environment
// variables on top of any store, and LoadDotEnv fills the environment
// from a .env file before that happens.
package file
