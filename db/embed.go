// Package db embeds the SQL migration files so production builds can
// run migrations without the source tree present. Build with the
// embed_migrations tag to use this; dev builds read db/migrations from
// disk instead.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
