package app

import (
	"gorm.io/gorm"

	"github.com/pantrypal/pantrypal-backend/internal/data/repos/catalog"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

type Repos struct {
	Recipes      catalog.RecipeRepo
	Preferences  catalog.PreferenceRepo
	Integrations catalog.IntegrationRepo
	Images       catalog.ImageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Recipes:      catalog.NewRecipeRepo(db, log),
		Preferences:  catalog.NewPreferenceRepo(db, log),
		Integrations: catalog.NewIntegrationRepo(db, log),
		Images:       catalog.NewImageRepo(db, log),
	}
}
