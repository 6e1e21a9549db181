package app

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pantrypal/pantrypal-backend/internal/http/middleware"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, mw Middleware) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("pantrypal"))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", handlers.Health.HealthCheck)

	api := r.Group("/api", mw.Auth.RequireAuth())
	{
		recipes := api.Group("/recipes")
		{
			recipes.GET("", handlers.Recipe.List)
			recipes.GET("/search", handlers.Recipe.Search)
			recipes.GET("/suggestions", handlers.Recipe.Suggestions)
			recipes.GET("/expiring", handlers.Recipe.Expiring)
			recipes.GET("/favorites", handlers.Recipe.Favorites)

			recipes.POST("/match", handlers.Match.Run)
			recipes.POST("/import", handlers.Import.Run)
			recipes.POST("/import/test", handlers.Import.TestConnection)
			recipes.POST("/dedup", handlers.Import.Dedup)

			recipes.GET("/integration", handlers.Integration.Get)
			recipes.PUT("/integration", handlers.Integration.Save)
			recipes.DELETE("/integration", handlers.Integration.Delete)

			recipes.GET("/:id", handlers.Recipe.Get)
			recipes.DELETE("/:id", handlers.Recipe.Delete)
			recipes.POST("/:id/favorite", handlers.Recipe.ToggleFavorite)
			recipes.POST("/:id/cooked", handlers.Recipe.RecordCooked)
			recipes.PUT("/:id/notes", handlers.Recipe.SetNotes)
		}
	}

	return r
}
