package database

import (
	"ripple/internal/models"

	"gorm.io/gorm"
)

// Migrate applies automatic schema migrations for all domain models.
//
// The relationship sets live in JSON columns on the entities themselves, so
// there are no edge tables and no foreign-key constraints to migrate: the
// schema intentionally carries no referential-integrity enforcement for the
// social graph.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
	)
}
