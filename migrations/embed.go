// Package migrations embeds SQL migration files into the binary.
//
// Migration files follow the naming convention:
//
//	YYYYMMDD_HHMMSS_description.up.sql   (apply)
//	YYYYMMDD_HHMMSS_description.down.sql (rollback)
//
// The database package discovers and applies these at startup.
package migrations

import (
	"embed"

	"github.com/vrfurtado/climacore/internal/infrastructure/database"
)

//go:embed *.sql
var files embed.FS

func init() {
	database.MigrationsFS = files
	database.MigrationsDir = "."
}
