// Package migrations embeds the advisor's SQL schema so the binary can
// migrate a database without a checkout of the repository.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
