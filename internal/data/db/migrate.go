package db

import (
	"fmt"

	types "github.com/pantrypal/pantrypal-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Shared household catalog
		&types.Recipe{},
		&types.RecipeImage{},

		// Per-user rows
		&types.UserRecipePreference{},
		&types.RecipeIntegration{},
	)
}

// EnsureCatalogIndexes creates the partial unique index guarding the
// deduplication invariant: at most one live recipe per non-null
// (external_provider, external_id) pair. Soft-deleted rows are excluded so a
// deleted recipe can be imported again. Safe to re-run.
func EnsureCatalogIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_recipe_external_live
		ON recipe(external_provider, external_id)
		WHERE external_id IS NOT NULL AND deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create uq_recipe_external_live: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_preference_user_match
		ON user_recipe_preference(user_id, match_percentage);
	`).Error; err != nil {
		return fmt.Errorf("create idx_preference_user_match: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_preference_user_expiring
		ON user_recipe_preference(user_id, uses_expiring_items);
	`).Error; err != nil {
		return fmt.Errorf("create idx_preference_user_expiring: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureCatalogIndexes(s.db); err != nil {
		s.log.Error("Catalog index migration failed", "error", err)
		return err
	}
	return nil
}
