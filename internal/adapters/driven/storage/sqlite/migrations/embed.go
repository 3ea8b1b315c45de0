// Package migrations embeds the SQL migrations of the run history database.
package migrations

import "embed"

// FS holds the migration files, named NNN_description.{up,down}.sql.
//
//go:embed *.sql
var FS embed.FS
