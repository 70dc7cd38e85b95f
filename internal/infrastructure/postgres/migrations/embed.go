package migrations

import "embed"

// FS migraciones PostgreSQL embebidas, aplicadas en orden de nombre.
//
//go:embed *.sql
var FS embed.FS
