// Package migrations holds the kv_store schema scripts.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
