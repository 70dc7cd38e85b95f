package migrations

import "embed"

// FS migraciones SQLite embebidas, aplicadas en orden de nombre.
//
//go:embed *.sql
var FS embed.FS
