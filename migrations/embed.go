// Package migrations holds the goose SQL migrations for the kiosk database.
package migrations

import "embed"

//go:embed *.sql
var MigrationsFS embed.FS
