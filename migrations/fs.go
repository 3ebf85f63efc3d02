package migrations

import "embed"

// FS embeds the SQL migrations so the migrate binary ships self-contained.
//
//go:embed *.sql
var FS embed.FS
