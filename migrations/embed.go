// Package migrations carries the Postgres schema for the catalog source.
package migrations

import "embed"

// FS is read by goose, both from testutil and from any deploy tooling that
// imports this package.
//
//go:embed *.sql
var FS embed.FS
