package migrations

import "embed"

// FS contains embedded SQLite migrations for gap report storage.
//
//go:embed *.sql
var FS embed.FS
