// Package migrations embeds the console session schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
