package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/yungbote/mia-backend/internal/http"
	"github.com/yungbote/mia-backend/internal/observability"
)

func wireRouter(handlers Handlers, metrics *observability.Metrics) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		SessionHandler:  handlers.Session,
		CatalogHandler:  handlers.Catalog,
		IdeationHandler: handlers.Ideation,
		HealthHandler:   handlers.Health,
		Metrics:         metrics,
	})
}
