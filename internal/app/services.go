package app

import (
	"github.com/yungbote/mia-backend/internal/platform/logger"
	"github.com/yungbote/mia-backend/internal/services"
)

type Services struct {
	Session    services.SessionService
	Catalog    services.CatalogService
	Extraction services.ExtractionService
	Export     services.ExportService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, repos Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Session:    services.NewSessionService(log),
		Catalog:    services.NewCatalogService(log, clients.IGDB, clients.Cache, cfg.SearchCacheTTL),
		Extraction: services.NewExtractionService(log, clients.Anthropic, clients.Cache, repos.ExtractionLog, cfg.MechanicCacheTTL, cfg.ExtractionConcurrency),
		Export:     services.NewExportService(log),
	}
}
