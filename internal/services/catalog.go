package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	redisclient "github.com/yungbote/mia-backend/internal/clients/redis"
	"github.com/yungbote/mia-backend/internal/platform/igdb"
	"github.com/yungbote/mia-backend/internal/platform/logger"

	types "github.com/yungbote/mia-backend/internal/domain"
)

const (
	popularPoolCap   = 100
	popularOffsetMax = 500
)

// CatalogService surfaces IGDB games for the inspiration step. Search
// results are cached; the popular feed is deliberately uncached so repeat
// visits see a fresh random slice of the well-rated back catalog.
type CatalogService interface {
	Search(ctx context.Context, name string, limit int) ([]types.Game, error)
	Popular(ctx context.Context, count int) ([]types.Game, error)
}

type catalogService struct {
	log       *logger.Logger
	igdb      igdb.Client
	cache     redisclient.Cache
	searchTTL time.Duration
}

func NewCatalogService(baseLog *logger.Logger, igdbClient igdb.Client, cache redisclient.Cache, searchTTL time.Duration) CatalogService {
	if searchTTL <= 0 {
		searchTTL = 30 * time.Minute
	}
	return &catalogService{
		log:       baseLog.With("service", "CatalogService"),
		igdb:      igdbClient,
		cache:     cache,
		searchTTL: searchTTL,
	}
}

func (s *catalogService) Search(ctx context.Context, name string, limit int) ([]types.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty search term")
	}
	if limit <= 0 || limit > 25 {
		limit = 10
	}

	key := fmt.Sprintf("igdb:search:%s:%d", strings.ToLower(name), limit)
	var cached []types.Game
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		s.log.Warn("search cache read failed", "key", key, "error", err)
	}

	games, err := s.igdb.SearchByName(ctx, name, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, key, games, s.searchTTL); err != nil {
		s.log.Warn("search cache write failed", "key", key, "error", err)
	}
	return games, nil
}

// Popular fetches a pool several times larger than requested at a random
// offset, then samples from it, so the same handful of top-rated titles
// does not dominate every session.
func (s *catalogService) Popular(ctx context.Context, count int) ([]types.Game, error) {
	if count <= 0 || count > 25 {
		count = 10
	}

	pool := count * 5
	if pool > popularPoolCap {
		pool = popularPoolCap
	}
	offset := rand.Intn(popularOffsetMax)

	games, err := s.igdb.PopularGames(ctx, pool, offset)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 && offset > 0 {
		// Random offset may have run off the end of the rated catalog.
		games, err = s.igdb.PopularGames(ctx, pool, 0)
		if err != nil {
			return nil, err
		}
	}
	if len(games) <= count {
		return games, nil
	}

	rand.Shuffle(len(games), func(i, j int) {
		games[i], games[j] = games[j], games[i]
	})
	return games[:count], nil
}
