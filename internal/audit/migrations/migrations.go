// Package migrations embeds the audit trail schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
