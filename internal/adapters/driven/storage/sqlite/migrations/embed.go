// Package migrations embeds the SQLite schema migrations. Files are named
// NNNN_description.up.sql and applied in ascending order.
package migrations

import "embed"

// FS holds every migration file, embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
