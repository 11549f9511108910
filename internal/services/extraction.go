package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	redisclient "github.com/yungbote/mia-backend/internal/clients/redis"
	"github.com/yungbote/mia-backend/internal/data/repos/extractionlog"
	"github.com/yungbote/mia-backend/internal/observability"
	"github.com/yungbote/mia-backend/internal/platform/anthropic"
	"github.com/yungbote/mia-backend/internal/platform/logger"

	types "github.com/yungbote/mia-backend/internal/domain"
)

const extractionSystemPrompt = "You are a game design analyst. You identify the single most distinctive gameplay mechanic of a game and describe it as exactly three words."

// ExtractionService turns selected games into structured mechanic
// descriptions via the LLM, with per-game caching and a best-effort audit
// trail. A game that fails extraction is skipped, not fatal; the wizard can
// proceed with fewer mechanics.
type ExtractionService interface {
	ExtractMechanics(ctx context.Context, games []types.Game) ([]types.ExtractedMechanic, error)
}

type extractionService struct {
	log         *logger.Logger
	llm         anthropic.Client
	cache       redisclient.Cache
	logRepo     extractionlog.ExtractionLogRepo
	cacheTTL    time.Duration
	concurrency int
}

func NewExtractionService(baseLog *logger.Logger, llm anthropic.Client, cache redisclient.Cache, logRepo extractionlog.ExtractionLogRepo, cacheTTL time.Duration, concurrency int) ExtractionService {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	if concurrency <= 0 {
		concurrency = 3
	}
	return &extractionService{
		log:         baseLog.With("service", "ExtractionService"),
		llm:         llm,
		cache:       cache,
		logRepo:     logRepo,
		cacheTTL:    cacheTTL,
		concurrency: concurrency,
	}
}

func (s *extractionService) ExtractMechanics(ctx context.Context, games []types.Game) ([]types.ExtractedMechanic, error) {
	if len(games) == 0 {
		return []types.ExtractedMechanic{}, nil
	}

	results := make([]*types.ExtractedMechanic, len(games))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, game := range games {
		i, game := i, game
		g.Go(func() error {
			m, err := s.extractOne(gctx, game)
			if err != nil {
				s.log.Warn("mechanic extraction failed, skipping game", "game", game.Name, "error", err)
				return nil
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]types.ExtractedMechanic, 0, len(games))
	for _, m := range results {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *extractionService) extractOne(ctx context.Context, game types.Game) (*types.ExtractedMechanic, error) {
	key := "mechanic:" + strings.ToLower(strings.TrimSpace(game.Name))

	var cached types.ExtractedMechanic
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		s.log.Warn("mechanic cache read failed", "key", key, "error", err)
	}

	start := time.Now()
	raw, err := s.llm.GenerateText(ctx, extractionSystemPrompt, extractionUserPrompt(game))
	latency := time.Since(start)
	if err != nil {
		s.audit(ctx, game.Name, types.ExtractionStatusError, map[string]any{"error": err.Error()}, latency)
		observability.Current().IncExtraction(types.ExtractionStatusError)
		return nil, err
	}

	noun, verb, subject, err := parseMechanicWords(raw)
	if err != nil {
		s.audit(ctx, game.Name, types.ExtractionStatusError, map[string]any{"raw": raw, "error": err.Error()}, latency)
		observability.Current().IncExtraction(types.ExtractionStatusError)
		return nil, fmt.Errorf("parse mechanic for %q: %w", game.Name, err)
	}

	m := &types.ExtractedMechanic{
		SourceTitle: game.Name,
		Name:        fmt.Sprintf("%s %s %s", noun, verb, subject),
		Description: fmt.Sprintf("%s %s %s system", titleWord(noun), verb, subject),
	}

	if err := s.cache.SetJSON(ctx, key, m, s.cacheTTL); err != nil {
		s.log.Warn("mechanic cache write failed", "key", key, "error", err)
	}
	s.audit(ctx, game.Name, types.ExtractionStatusOK, map[string]any{"noun": noun, "verb": verb, "subject": subject}, latency)
	observability.Current().IncExtraction(types.ExtractionStatusOK)
	return m, nil
}

func extractionUserPrompt(game types.Game) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game: %s\n", game.Name)
	if len(game.Genres) > 0 {
		fmt.Fprintf(&b, "Genres: %s\n", strings.Join(game.Genres, ", "))
	}
	if len(game.Themes) > 0 {
		fmt.Fprintf(&b, "Themes: %s\n", strings.Join(game.Themes, ", "))
	}
	if summary := strings.TrimSpace(game.Summary); summary != "" {
		if len(summary) > 500 {
			summary = summary[:500]
		}
		fmt.Fprintf(&b, "Summary: %s\n", summary)
	}
	b.WriteString("\nRespond with ONLY a JSON array of exactly three lowercase words describing the game's most distinctive mechanic: [noun, verb, subject]. Example: [\"time\", \"rewinds\", \"world\"]")
	return b.String()
}

var quotedWordRe = regexp.MustCompile(`"([^"]+)"`)

// parseMechanicWords accepts the model's reply as a JSON array of three
// strings, falling back to the first three quoted words when the model
// wrapped the array in prose.
func parseMechanicWords(raw string) (noun, verb, subject string, err error) {
	raw = strings.TrimSpace(raw)

	candidate := raw
	if start := strings.Index(raw, "["); start >= 0 {
		if end := strings.LastIndex(raw, "]"); end > start {
			candidate = raw[start : end+1]
		}
	}

	var words []string
	if jsonErr := json.Unmarshal([]byte(candidate), &words); jsonErr != nil {
		words = nil
		for _, m := range quotedWordRe.FindAllStringSubmatch(raw, 3) {
			words = append(words, m[1])
		}
	}

	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			cleaned = append(cleaned, w)
		}
	}
	if len(cleaned) < 3 {
		return "", "", "", fmt.Errorf("expected 3 words, got %d in %q", len(cleaned), raw)
	}
	return cleaned[0], cleaned[1], cleaned[2], nil
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// audit writes one extraction log row; failures are logged and swallowed so
// a broken audit table never blocks the wizard.
func (s *extractionService) audit(ctx context.Context, gameName, status string, summary map[string]any, latency time.Duration) {
	if s.logRepo == nil {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		payload = nil
	}
	row := &types.ExtractionLog{
		GameName:  gameName,
		Model:     s.llm.Model(),
		Status:    status,
		Summary:   datatypes.JSON(payload),
		LatencyMS: latency.Milliseconds(),
	}
	if _, err := s.logRepo.Create(ctx, nil, []*types.ExtractionLog{row}); err != nil {
		s.log.Warn("extraction audit write failed", "game", gameName, "error", err)
	}
}
