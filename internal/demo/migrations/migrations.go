// Package migrations embeds the demo schema migrations so the binary does
// not depend on the filesystem at runtime.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
