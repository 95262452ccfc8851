// Package db embeds the SQL migrations so production builds
// (-tags embed_migrations) need no migrations directory on disk.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
