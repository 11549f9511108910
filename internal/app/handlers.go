package app

import (
	"github.com/yungbote/mia-backend/internal/http/handlers"
	"github.com/yungbote/mia-backend/internal/platform/logger"
)

type Handlers struct {
	Session  *handlers.SessionHandler
	Catalog  *handlers.CatalogHandler
	Ideation *handlers.IdeationHandler
	Health   *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Session:  handlers.NewSessionHandler(log, services.Session, services.Extraction, services.Export),
		Catalog:  handlers.NewCatalogHandler(log, services.Catalog),
		Ideation: handlers.NewIdeationHandler(log),
		Health:   handlers.NewHealthHandler(),
	}
}
