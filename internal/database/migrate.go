package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/chirpsocial/backend/internal/models"
)

// Migrate creates the schema: tables, unique indexes and the ON DELETE
// CASCADE foreign keys that make account deletion a single storage-level
// operation. On PostgreSQL it additionally builds the full-text search
// index for the given text search configuration.
func Migrate(db *gorm.DB, searchLanguage string) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Post{},
		&models.Like{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		stmt := fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_posts_content_search ON posts USING GIN (to_tsvector('%s', content))",
			searchLanguage,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create search index: %w", err)
		}
	}

	return nil
}
