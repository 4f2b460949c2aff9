// Package migrations embeds the versioned PostgreSQL schema so the server and
// the migrate command run the same files without a checkout on disk.
package migrations

import "embed"

// FS holds every NNNNNN_name.{up,down}.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
