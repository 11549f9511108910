package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/mia-backend/internal/modules/ideation"
	"github.com/yungbote/mia-backend/internal/observability"
	"github.com/yungbote/mia-backend/internal/platform/logger"

	types "github.com/yungbote/mia-backend/internal/domain"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSchemaNotSet    = errors.New("schema not selected yet")
	ErrRatingsNotSet   = errors.New("ratings not submitted yet")
	ErrNothingToLock   = errors.New("no suggestions to lock")
	ErrGameCount       = errors.New("between 1 and 3 games must be selected")
)

// SessionService owns the in-memory wizard state. Sessions live only for the
// process lifetime; editing an earlier step clears everything derived from it
// so stale fit scores or suggestions can never leak forward.
type SessionService interface {
	Create(ctx context.Context) *types.IdeaSession
	Get(ctx context.Context, id uuid.UUID) (*types.IdeaSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetNarrative(ctx context.Context, id uuid.UUID, prompt string) (*types.IdeaSession, error)
	SetGames(ctx context.Context, id uuid.UUID, games []types.Game) (*types.IdeaSession, error)
	SetMechanics(ctx context.Context, id uuid.UUID, mechanics []types.ExtractedMechanic) (*types.IdeaSession, error)
	SetSchema(ctx context.Context, id uuid.UUID, schema types.Schema) (*types.IdeaSession, error)
	SetRatings(ctx context.Context, id uuid.UUID, ratings types.RatingProfile) (*types.IdeaSession, error)
	GenerateSuggestions(ctx context.Context, id uuid.UUID) (*types.IdeaSession, error)
	Lock(ctx context.Context, id uuid.UUID) (*types.IdeaSession, error)
	StartJanitor(ctx context.Context, ttl time.Duration)
}

type sessionService struct {
	log *logger.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*types.IdeaSession
}

func NewSessionService(baseLog *logger.Logger) SessionService {
	return &sessionService{
		log:      baseLog.With("service", "SessionService"),
		sessions: map[uuid.UUID]*types.IdeaSession{},
	}
}

func (s *sessionService) Create(ctx context.Context) *types.IdeaSession {
	now := time.Now().UTC()
	sess := &types.IdeaSession{
		ID:        uuid.New(),
		Step:      types.StepNarrative,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	observability.Current().SessionOpened()
	s.log.Info("session created", "session_id", sess.ID)
	return cloneSession(sess)
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*types.IdeaSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return cloneSession(sess), nil
}

func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	observability.Current().SessionClosed()
	return nil
}

// mutate runs fn under the write lock and returns a copy of the updated
// session. All Set* operations funnel through here.
func (s *sessionService) mutate(id uuid.UUID, fn func(*types.IdeaSession) error) (*types.IdeaSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = time.Now().UTC()
	return cloneSession(sess), nil
}

func (s *sessionService) SetNarrative(ctx context.Context, id uuid.UUID, prompt string) (*types.IdeaSession, error) {
	return s.mutate(id, func(sess *types.IdeaSession) error {
		sess.NarrativePrompt = prompt
		sess.Profile = ideation.Analyze(prompt)
		sess.Suggestions = nil
		sess.Locked = nil
		if err := refreshFit(sess); err != nil {
			return err
		}
		if sess.Step < types.StepGames {
			sess.Step = types.StepGames
		}
		return nil
	})
}

func (s *sessionService) SetGames(ctx context.Context, id uuid.UUID, games []types.Game) (*types.IdeaSession, error) {
	if len(games) < 1 || len(games) > 3 {
		return nil, fmt.Errorf("%w: got %d", ErrGameCount, len(games))
	}
	return s.mutate(id, func(sess *types.IdeaSession) error {
		sess.SelectedGames = append([]types.Game(nil), games...)
		sess.Mechanics = nil
		sess.Suggestions = nil
		sess.Locked = nil
		if sess.Step < types.StepMechanics {
			sess.Step = types.StepMechanics
		}
		return nil
	})
}

func (s *sessionService) SetMechanics(ctx context.Context, id uuid.UUID, mechanics []types.ExtractedMechanic) (*types.IdeaSession, error) {
	return s.mutate(id, func(sess *types.IdeaSession) error {
		sess.Mechanics = append([]types.ExtractedMechanic(nil), mechanics...)
		sess.Suggestions = nil
		sess.Locked = nil
		if sess.Step < types.StepSchema {
			sess.Step = types.StepSchema
		}
		return nil
	})
}

func (s *sessionService) SetSchema(ctx context.Context, id uuid.UUID, schema types.Schema) (*types.IdeaSession, error) {
	if !schema.Valid() {
		return nil, fmt.Errorf("%w: %q", ideation.ErrUnknownSchema, schema)
	}
	return s.mutate(id, func(sess *types.IdeaSession) error {
		sess.Schema = schema
		sess.Suggestions = nil
		sess.Locked = nil
		if err := refreshFit(sess); err != nil {
			return err
		}
		if sess.Step < types.StepRatings {
			sess.Step = types.StepRatings
		}
		return nil
	})
}

func (s *sessionService) SetRatings(ctx context.Context, id uuid.UUID, ratings types.RatingProfile) (*types.IdeaSession, error) {
	if !ratings.InRange() {
		return nil, fmt.Errorf("%w: fun=%d novelty=%d visual=%d", ideation.ErrInvalidRatingRange, ratings.Fun, ratings.Novelty, ratings.Visual)
	}
	return s.mutate(id, func(sess *types.IdeaSession) error {
		if !sess.Schema.Valid() {
			return ErrSchemaNotSet
		}
		r := ratings
		sess.Ratings = &r
		sess.Suggestions = nil
		sess.Locked = nil
		if err := refreshFit(sess); err != nil {
			return err
		}
		if sess.Step < types.StepSuggestions {
			sess.Step = types.StepSuggestions
		}
		return nil
	})
}

func (s *sessionService) GenerateSuggestions(ctx context.Context, id uuid.UUID) (*types.IdeaSession, error) {
	return s.mutate(id, func(sess *types.IdeaSession) error {
		if !sess.Schema.Valid() {
			return ErrSchemaNotSet
		}
		if sess.Ratings == nil {
			return ErrRatingsNotSet
		}
		suggestions, err := ideation.Synthesize(sess.Profile, sess.Mechanics, sess.Schema, *sess.Ratings)
		if err != nil {
			return err
		}
		sess.Suggestions = suggestions
		sess.Locked = nil
		if sess.Step < types.StepExport {
			sess.Step = types.StepExport
		}
		return nil
	})
}

func (s *sessionService) Lock(ctx context.Context, id uuid.UUID) (*types.IdeaSession, error) {
	return s.mutate(id, func(sess *types.IdeaSession) error {
		if len(sess.Suggestions) == 0 {
			return ErrNothingToLock
		}
		sess.Locked = &types.LockedIdea{
			NarrativePrompt: sess.NarrativePrompt,
			SelectedGames:   append([]types.Game(nil), sess.SelectedGames...),
			Mechanics:       append([]types.ExtractedMechanic(nil), sess.Mechanics...),
			Schema:          sess.Schema,
			Ratings:         *sess.Ratings,
			Suggestions:     append([]types.Suggestion(nil), sess.Suggestions...),
			LockedAt:        time.Now().UTC(),
		}
		sess.Step = types.StepExport
		return nil
	})
}

// StartJanitor evicts sessions idle beyond ttl. A ttl of zero disables it.
func (s *sessionService) StartJanitor(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().UTC().Add(-ttl)
				var evicted int
				s.mu.Lock()
				for id, sess := range s.sessions {
					if sess.UpdatedAt.Before(cutoff) {
						delete(s.sessions, id)
						evicted++
					}
				}
				s.mu.Unlock()
				for i := 0; i < evicted; i++ {
					observability.Current().SessionClosed()
				}
				if evicted > 0 {
					s.log.Info("sessions evicted", "count", evicted)
				}
			}
		}
	}()
}

// refreshFit recomputes the fit assessment when both schema and ratings are
// present, and clears it otherwise.
func refreshFit(sess *types.IdeaSession) error {
	if !sess.Schema.Valid() || sess.Ratings == nil {
		sess.Fit = nil
		return nil
	}
	fit, err := ideation.ScoreFit(sess.Profile, *sess.Ratings, sess.Schema)
	if err != nil {
		return err
	}
	sess.Fit = &fit
	return nil
}

func cloneSession(sess *types.IdeaSession) *types.IdeaSession {
	out := *sess
	out.SelectedGames = append([]types.Game(nil), sess.SelectedGames...)
	out.Mechanics = append([]types.ExtractedMechanic(nil), sess.Mechanics...)
	out.Suggestions = append([]types.Suggestion(nil), sess.Suggestions...)
	if sess.Ratings != nil {
		r := *sess.Ratings
		out.Ratings = &r
	}
	if sess.Fit != nil {
		f := *sess.Fit
		f.Alternates = append([]types.SchemaCandidate(nil), sess.Fit.Alternates...)
		out.Fit = &f
	}
	if sess.Locked != nil {
		l := *sess.Locked
		l.SelectedGames = append([]types.Game(nil), sess.Locked.SelectedGames...)
		l.Mechanics = append([]types.ExtractedMechanic(nil), sess.Locked.Mechanics...)
		l.Suggestions = append([]types.Suggestion(nil), sess.Locked.Suggestions...)
		out.Locked = &l
	}
	return &out
}
