// Package migrations embeds the goose migrations for the client's local
// store. Migrations are additive only: a new schema version may add tables
// and indexes but never drops existing data on the upgrade path.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
