package db

import "gorm.io/gorm"

// EnsureSchema creates the named Postgres schema if it doesn't exist yet.
// Called by the import tools before migrating tables into it.
func EnsureSchema(d *gorm.DB, schema string) error {
	return d.Exec(`CREATE SCHEMA IF NOT EXISTS "` + schema + `"`).Error
}
