package db

import "gorm.io/gorm"

// EnsureSchema creates the named Postgres schema if it does not exist yet.
// Safe to run on every boot ahead of AutoMigrate.
func EnsureSchema(d *gorm.DB, schema string) error {
	return d.Exec(`CREATE SCHEMA IF NOT EXISTS "` + schema + `"`).Error
}
