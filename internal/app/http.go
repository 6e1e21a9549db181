package app

import (
	httpH "github.com/pantrypal/pantrypal-backend/internal/http/handlers"
	httpMW "github.com/pantrypal/pantrypal-backend/internal/http/middleware"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Recipe      *httpH.RecipeHandler
	Match       *httpH.MatchHandler
	Import      *httpH.ImportHandler
	Integration *httpH.IntegrationHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Recipe:      httpH.NewRecipeHandler(services.Recipe, services.Preference),
		Match:       httpH.NewMatchHandler(services.Match),
		Import:      httpH.NewImportHandler(services.Import, services.Dedup),
		Integration: httpH.NewIntegrationHandler(services.Integration),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey),
	}
}
