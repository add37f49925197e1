// Package migrations embeds the development backend's sqlite schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
