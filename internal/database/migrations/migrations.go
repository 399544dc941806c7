// Package migrations holds the versioned schema migrations. Each migration
// snapshots the entity shapes it created, so later model changes arrive as
// new migrations instead of silently rewriting old ones.
package migrations

import (
	"log"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// migrationsList holds all migrations in order
var migrationsList = []*gormigrate.Migration{
	CreateReportTables(),
}

// RunMigrations runs all database migrations. Applied migrations are
// recorded and skipped, so this is safe to call on every process start.
func RunMigrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrationsList)

	if err := m.Migrate(); err != nil {
		log.Printf("Could not migrate: %v", err)
		return err
	}
	log.Printf("Migrations ran successfully")
	return nil
}
