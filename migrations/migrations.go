// Package migrations embeds the SQL schema files so the compiled binary
// can bootstrap its own database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
