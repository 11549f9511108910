package app

import (
	"fmt"
	"os"
	"strings"

	redisclient "github.com/yungbote/mia-backend/internal/clients/redis"
	"github.com/yungbote/mia-backend/internal/platform/anthropic"
	"github.com/yungbote/mia-backend/internal/platform/igdb"
	"github.com/yungbote/mia-backend/internal/platform/logger"
)

type Clients struct {
	Cache     redisclient.Cache
	IGDB      igdb.Client
	Anthropic anthropic.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis cache, in-memory fallback when unconfigured
	var cache redisclient.Cache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := redisclient.NewCache(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis cache: %w", err)
		}
		cache = c
	} else {
		log.Info("REDIS_ADDR not set, using in-memory cache")
		cache = redisclient.NewMemoryCache()
	}

	igdbClient, err := igdb.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init igdb client: %w", err)
	}

	anthropicClient, err := anthropic.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init anthropic client: %w", err)
	}

	return Clients{
		Cache:     cache,
		IGDB:      igdbClient,
		Anthropic: anthropicClient,
	}, nil
}
