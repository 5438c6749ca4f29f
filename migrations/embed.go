// Package migrations embeds the SQL migration files so they can be applied
// with goose at startup and in integration tests without shipping loose
// files alongside the binary.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass this to the goose provider instead of relying on a filesystem
// path at runtime.
//
//go:embed *.sql
var FS embed.FS
