package app

import (
	"time"

	"github.com/yungbote/mia-backend/internal/platform/envutil"
	"github.com/yungbote/mia-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	MetricsAddr string

	SearchCacheTTL        time.Duration
	MechanicCacheTTL      time.Duration
	SessionTTL            time.Duration
	ExtractionConcurrency int
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:                  envutil.Str("PORT", "8080"),
		MetricsAddr:           envutil.Str("METRICS_ADDR", ":9091"),
		SearchCacheTTL:        envutil.Duration("SEARCH_CACHE_TTL", 30*time.Minute),
		MechanicCacheTTL:      envutil.Duration("MECHANIC_CACHE_TTL", time.Hour),
		SessionTTL:            envutil.Duration("SESSION_TTL", 24*time.Hour),
		ExtractionConcurrency: envutil.Int("EXTRACTION_CONCURRENCY", 3),
	}
	log.Info("config loaded",
		"port", cfg.Port,
		"search_cache_ttl", cfg.SearchCacheTTL.String(),
		"mechanic_cache_ttl", cfg.MechanicCacheTTL.String(),
		"session_ttl", cfg.SessionTTL.String(),
		"extraction_concurrency", cfg.ExtractionConcurrency,
	)
	return cfg
}
