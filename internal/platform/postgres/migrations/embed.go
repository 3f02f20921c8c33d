// Package migrations embeds the goose SQL migration files so the server
// binary can bring a database up to the current schema without shipping
// loose files alongside it.
package migrations

import "embed"

// Migrations holds the embedded SQL migration files, applied in
// lexicographic order by goose.
//
//go:embed *.sql
var Migrations embed.FS
