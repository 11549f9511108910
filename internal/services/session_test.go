package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/mia-backend/internal/modules/ideation"
	"github.com/yungbote/mia-backend/internal/platform/logger"

	types "github.com/yungbote/mia-backend/internal/domain"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func testMechanics() []types.ExtractedMechanic {
	return []types.ExtractedMechanic{
		{SourceTitle: "Braid", Name: "time rewinds world", Description: "Time rewinds world system"},
		{SourceTitle: "Journey", Name: "chirp links strangers", Description: "Chirp links strangers system"},
	}
}

func testGames(n int) []types.Game {
	games := []types.Game{
		{ID: 1, Name: "Braid", Genres: []string{"Puzzle"}},
		{ID: 2, Name: "Journey", Genres: []string{"Adventure"}},
		{ID: 3, Name: "Hades", Genres: []string{"Roguelike"}},
		{ID: 4, Name: "Inside", Genres: []string{"Platformer"}},
	}
	return games[:n]
}

func TestSessionLifecycle(t *testing.T) {
	svc := NewSessionService(testLogger(t))
	ctx := context.Background()

	sess := svc.Create(ctx)
	if sess.Step != types.StepNarrative {
		t.Fatalf("new session step = %d, want %d", sess.Step, types.StepNarrative)
	}

	sess, err := svc.SetNarrative(ctx, sess.ID, "A hero loses their powers and must find a new way to save the world")
	if err != nil {
		t.Fatalf("SetNarrative: %v", err)
	}
	if !sess.Profile.HasTheme("loss-of-power") {
		t.Fatalf("narrative was not analyzed: %+v", sess.Profile)
	}
	if sess.Step != types.StepGames {
		t.Fatalf("step = %d, want %d", sess.Step, types.StepGames)
	}

	sess, err = svc.SetGames(ctx, sess.ID, testGames(2))
	if err != nil {
		t.Fatalf("SetGames: %v", err)
	}
	sess, err = svc.SetMechanics(ctx, sess.ID, testMechanics())
	if err != nil {
		t.Fatalf("SetMechanics: %v", err)
	}
	sess, err = svc.SetSchema(ctx, sess.ID, types.SchemaTransformation)
	if err != nil {
		t.Fatalf("SetSchema: %v", err)
	}
	if sess.Fit != nil {
		t.Fatal("fit must not exist before ratings arrive")
	}

	sess, err = svc.SetRatings(ctx, sess.ID, types.RatingProfile{Fun: 7, Novelty: 9, Visual: 8})
	if err != nil {
		t.Fatalf("SetRatings: %v", err)
	}
	if sess.Fit == nil {
		t.Fatal("ratings must produce a fit assessment")
	}

	sess, err = svc.GenerateSuggestions(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GenerateSuggestions: %v", err)
	}
	if len(sess.Suggestions) != 3 {
		t.Fatalf("suggestions = %d, want 3", len(sess.Suggestions))
	}

	sess, err = svc.Lock(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if sess.Locked == nil || len(sess.Locked.Suggestions) != 3 {
		t.Fatalf("locked snapshot incomplete: %+v", sess.Locked)
	}
	if sess.Step != types.StepExport {
		t.Fatalf("step = %d, want %d", sess.Step, types.StepExport)
	}

	if err := svc.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound after delete, got %v", err)
	}
}

func TestSessionNotFound(t *testing.T) {
	svc := NewSessionService(testLogger(t))
	ctx := context.Background()

	if _, err := svc.Get(ctx, uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.SetNarrative(ctx, uuid.New(), "x"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
}

func TestSessionGameCountBounds(t *testing.T) {
	svc := NewSessionService(testLogger(t))
	ctx := context.Background()
	sess := svc.Create(ctx)

	if _, err := svc.SetGames(ctx, sess.ID, nil); !errors.Is(err, ErrGameCount) {
		t.Fatalf("0 games: want ErrGameCount, got %v", err)
	}
	if _, err := svc.SetGames(ctx, sess.ID, testGames(4)); !errors.Is(err, ErrGameCount) {
		t.Fatalf("4 games: want ErrGameCount, got %v", err)
	}
	if _, err := svc.SetGames(ctx, sess.ID, testGames(3)); err != nil {
		t.Fatalf("3 games: %v", err)
	}
}

func TestSessionRatingsRequireSchema(t *testing.T) {
	svc := NewSessionService(testLogger(t))
	ctx := context.Background()
	sess := svc.Create(ctx)

	_, err := svc.SetRatings(ctx, sess.ID, types.RatingProfile{Fun: 5, Novelty: 5, Visual: 5})
	if !errors.Is(err, ErrSchemaNotSet) {
		t.Fatalf("want ErrSchemaNotSet, got %v", err)
	}
	_, err = svc.SetRatings(ctx, sess.ID, types.RatingProfile{Fun: 12, Novelty: 5, Visual: 5})
	if !errors.Is(err, ideation.ErrInvalidRatingRange) {
		t.Fatalf("want ErrInvalidRatingRange, got %v", err)
	}
}

func TestSessionEditInvalidatesDownstream(t *testing.T) {
	svc := NewSessionService(testLogger(t))
	ctx := context.Background()
	sess := svc.Create(ctx)

	mustStep := func(op string) func(*types.IdeaSession, error) *types.IdeaSession {
		return func(got *types.IdeaSession, err error) *types.IdeaSession {
			t.Helper()
			if err != nil {
				t.Fatalf("%s: %v", op, err)
			}
			return got
		}
	}

	sess = mustStep("SetNarrative")(svc.SetNarrative(ctx, sess.ID, "A hero must save the world"))
	sess = mustStep("SetGames")(svc.SetGames(ctx, sess.ID, testGames(2)))
	sess = mustStep("SetMechanics")(svc.SetMechanics(ctx, sess.ID, testMechanics()))
	sess = mustStep("SetSchema")(svc.SetSchema(ctx, sess.ID, types.SchemaNarrativeChoice))
	sess = mustStep("SetRatings")(svc.SetRatings(ctx, sess.ID, types.RatingProfile{Fun: 6, Novelty: 6, Visual: 6}))
	sess = mustStep("GenerateSuggestions")(svc.GenerateSuggestions(ctx, sess.ID))
	sess = mustStep("Lock")(svc.Lock(ctx, sess.ID))
	if sess.Locked == nil {
		t.Fatal("expected a locked snapshot")
	}

	// Changing the game selection must drop mechanics, suggestions and the
	// locked snapshot, but keep the fit assessment intact.
	sess = mustStep("SetGames again")(svc.SetGames(ctx, sess.ID, testGames(1)))
	if len(sess.Mechanics) != 0 {
		t.Fatalf("mechanics survived a game edit: %v", sess.Mechanics)
	}
	if len(sess.Suggestions) != 0 || sess.Locked != nil {
		t.Fatal("suggestions or locked snapshot survived a game edit")
	}
	if sess.Fit == nil {
		t.Fatal("fit should survive a game edit")
	}

	// Changing the schema must recompute fit and also drop suggestions.
	before := sess.Fit.MismatchScore
	sess = mustStep("SetSchema again")(svc.SetSchema(ctx, sess.ID, types.SchemaCooperation))
	if sess.Fit == nil {
		t.Fatal("fit must be recomputed on schema change")
	}
	if sess.Fit.MismatchScore == before {
		t.Fatal("fit did not change with the schema")
	}
}

func TestSessionLockRequiresSuggestions(t *testing.T) {
	svc := NewSessionService(testLogger(t))
	ctx := context.Background()
	sess := svc.Create(ctx)

	if _, err := svc.Lock(ctx, sess.ID); !errors.Is(err, ErrNothingToLock) {
		t.Fatalf("want ErrNothingToLock, got %v", err)
	}
}

func TestSessionCloneIsolation(t *testing.T) {
	svc := NewSessionService(testLogger(t))
	ctx := context.Background()
	sess := svc.Create(ctx)

	sess, err := svc.SetGames(ctx, sess.ID, testGames(2))
	if err != nil {
		t.Fatalf("SetGames: %v", err)
	}
	sess.SelectedGames[0].Name = "mutated"

	fresh, err := svc.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh.SelectedGames[0].Name == "mutated" {
		t.Fatal("returned session must be a copy of internal state")
	}
}
