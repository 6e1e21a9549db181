package app

import (
	"gorm.io/gorm"

	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
	"github.com/pantrypal/pantrypal-backend/internal/services"
)

type Services struct {
	Recipe      services.RecipeService
	Preference  services.PreferenceService
	Match       services.MatchService
	Import      services.ImportService
	Dedup       services.DedupService
	Integration services.IntegrationService
}

func wireServices(db *gorm.DB, log *logger.Logger, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Recipe:      services.NewRecipeService(db, log, repos.Recipes, repos.Preferences, repos.Images, clients.ImageStore),
		Preference:  services.NewPreferenceService(db, log, repos.Recipes, repos.Preferences),
		Match:       services.NewMatchService(log, repos.Recipes, repos.Preferences, clients.Pantry),
		Import:      services.NewImportService(db, log, repos.Recipes, repos.Images, repos.Integrations, clients.ImageStore, clients.ImportLock),
		Dedup:       services.NewDedupService(db, log, repos.Recipes, repos.Preferences, repos.Images),
		Integration: services.NewIntegrationService(db, log, repos.Integrations, repos.Recipes),
	}
}
