package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/mia-backend/internal/http/handlers"
	httpMW "github.com/yungbote/mia-backend/internal/http/middleware"
	"github.com/yungbote/mia-backend/internal/observability"
)

type RouterConfig struct {
	SessionHandler  *httpH.SessionHandler
	CatalogHandler  *httpH.CatalogHandler
	IdeationHandler *httpH.IdeationHandler
	HealthHandler   *httpH.HealthHandler

	Metrics *observability.Metrics
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.CORS())
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Stateless ideation metadata
		if cfg.IdeationHandler != nil {
			api.GET("/presets", cfg.IdeationHandler.Presets)
			api.GET("/schemas", cfg.IdeationHandler.Schemas)
			api.POST("/narrative/analyze", cfg.IdeationHandler.Analyze)
		}

		// Game catalog
		if cfg.CatalogHandler != nil {
			api.GET("/games/popular", cfg.CatalogHandler.Popular)
			api.GET("/games/search", cfg.CatalogHandler.Search)
		}

		// Ideation sessions (the wizard)
		if cfg.SessionHandler != nil {
			api.POST("/sessions", cfg.SessionHandler.Create)
			api.GET("/sessions/:id", cfg.SessionHandler.Get)
			api.DELETE("/sessions/:id", cfg.SessionHandler.Delete)
			api.PUT("/sessions/:id/narrative", cfg.SessionHandler.SetNarrative)
			api.PUT("/sessions/:id/games", cfg.SessionHandler.SetGames)
			api.POST("/sessions/:id/mechanics", cfg.SessionHandler.ExtractMechanics)
			api.PUT("/sessions/:id/schema", cfg.SessionHandler.SetSchema)
			api.PUT("/sessions/:id/ratings", cfg.SessionHandler.SetRatings)
			api.POST("/sessions/:id/suggestions", cfg.SessionHandler.GenerateSuggestions)
			api.POST("/sessions/:id/lock", cfg.SessionHandler.Lock)
			api.GET("/sessions/:id/export", cfg.SessionHandler.Export)
		}
	}

	return r
}
