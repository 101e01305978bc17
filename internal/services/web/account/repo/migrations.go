package repo

import (
	"embed"

	"reviewlens/internal/platform/store/migrate"
)

// Migrations holds the Postgres schema for the prefs table, applied by reviewlens-migrate
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationSet is the account schema as a migrate set
var MigrationSet = migrate.Set{Name: "account", FS: Migrations, Dir: "migrations"}
