package db

import "embed"

// MigrationFS embeds the SQL schema migrations applied by cmd/migrate.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
