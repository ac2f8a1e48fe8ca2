// Package migrations embeds the goose SQL migrations of the SQL backends.
// Each dialect lives in its own directory: "sqlite" and "postgres".
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
