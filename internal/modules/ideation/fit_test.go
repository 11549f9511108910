package ideation

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	types "github.com/yungbote/mia-backend/internal/domain"
)

func heroProfile() types.NarrativeProfile {
	return Analyze("A hero loses their powers and must find a new way to save the world")
}

func TestScoreFitComfortable(t *testing.T) {
	got, err := ScoreFit(heroProfile(), types.RatingProfile{Fun: 7, Novelty: 9, Visual: 8}, types.SchemaTransformation)
	if err != nil {
		t.Fatalf("ScoreFit: %v", err)
	}

	// theme gap 1 - 1/6, rating gap 1/30, affinity gap 1.
	want := (1 - 1.0/6) + 1.0/30 + 1
	if math.Abs(got.MismatchScore-want) > 1e-9 {
		t.Fatalf("mismatch = %f, want %f", got.MismatchScore, want)
	}
	if got.RecommendAlternate {
		t.Fatalf("score %.2f is under the threshold, must not recommend", got.MismatchScore)
	}
	if got.Alternates != nil {
		t.Fatalf("alternates must stay empty when not recommending, got %v", got.Alternates)
	}
	if got.Rationale == "" {
		t.Fatal("rationale is mandatory")
	}
}

func TestScoreFitRecommendsAlternates(t *testing.T) {
	got, err := ScoreFit(heroProfile(), types.RatingProfile{}, types.SchemaCooperation)
	if err != nil {
		t.Fatalf("ScoreFit: %v", err)
	}
	if !got.RecommendAlternate {
		t.Fatalf("mismatch %.2f should recommend an alternate", got.MismatchScore)
	}
	if len(got.Alternates) != 3 {
		t.Fatalf("expected 3 alternates, got %d", len(got.Alternates))
	}

	// Top overlaps are puzzle_integration and narrative_choice at 2/5,
	// tied and resolved by enum order, then emotion_states at 1/6.
	wantOrder := []types.Schema{
		types.SchemaPuzzleIntegration,
		types.SchemaNarrativeChoice,
		types.SchemaEmotionStates,
	}
	for i, alt := range got.Alternates {
		if alt.Schema != wantOrder[i] {
			t.Fatalf("alternate[%d] = %s, want %s", i, alt.Schema, wantOrder[i])
		}
		if alt.Schema == types.SchemaCooperation {
			t.Fatal("selected schema must never appear among alternates")
		}
	}
	if math.Abs(got.Alternates[0].Confidence-0.4) > 1e-9 {
		t.Fatalf("alternate confidence = %f, want 0.4", got.Alternates[0].Confidence)
	}
	if !strings.Contains(got.Rationale, "worth a look") {
		t.Fatalf("rationale should surface the recommendation: %q", got.Rationale)
	}
}

func TestScoreFitSelectedNeverAnAlternate(t *testing.T) {
	profile := heroProfile()
	for _, s := range types.AllSchemas() {
		got, err := ScoreFitWithThreshold(profile, types.RatingProfile{}, s, 0)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if !got.RecommendAlternate {
			t.Fatalf("%s: threshold 0 must always recommend", s)
		}
		for _, alt := range got.Alternates {
			if alt.Schema == s {
				t.Fatalf("%s listed as its own alternate", s)
			}
		}
	}
}

func TestScoreFitEmptyNarrative(t *testing.T) {
	profile := Analyze("")
	got, err := ScoreFit(profile, types.RatingProfile{Fun: 7, Novelty: 6, Visual: 8}, types.SchemaEmotionStates)
	if err != nil {
		t.Fatalf("ScoreFit: %v", err)
	}
	// Neutral theme gap 0.5, exact rating center, first in enum order so
	// the zero-overlap top 3 still contains it.
	if math.Abs(got.MismatchScore-0.5) > 1e-9 {
		t.Fatalf("mismatch = %f, want 0.5", got.MismatchScore)
	}
	if got.RecommendAlternate {
		t.Fatal("empty narrative at the rating center must not trigger a recommendation")
	}
}

func TestScoreFitThresholdIsStrict(t *testing.T) {
	profile := heroProfile()
	ratings := types.RatingProfile{Fun: 2, Novelty: 2, Visual: 2}
	base, err := ScoreFit(profile, ratings, types.SchemaCooperation)
	if err != nil {
		t.Fatalf("ScoreFit: %v", err)
	}

	// A score exactly at the threshold must not recommend; strictly above
	// it must.
	at, err := ScoreFitWithThreshold(profile, ratings, types.SchemaCooperation, base.MismatchScore)
	if err != nil {
		t.Fatalf("ScoreFitWithThreshold: %v", err)
	}
	if at.RecommendAlternate {
		t.Fatalf("mismatch %.4f equals the threshold and must not recommend", at.MismatchScore)
	}
	above, err := ScoreFitWithThreshold(profile, ratings, types.SchemaCooperation, base.MismatchScore-1e-9)
	if err != nil {
		t.Fatalf("ScoreFitWithThreshold: %v", err)
	}
	if !above.RecommendAlternate {
		t.Fatalf("mismatch %.4f is above the threshold and must recommend", above.MismatchScore)
	}
}

func TestScoreFitRatingValidation(t *testing.T) {
	profile := heroProfile()
	if _, err := ScoreFit(profile, types.RatingProfile{Fun: 0, Novelty: 10, Visual: 0}, types.SchemaKarmaSystem); err != nil {
		t.Fatalf("endpoints 0 and 10 are valid: %v", err)
	}
	_, err := ScoreFit(profile, types.RatingProfile{Fun: 11, Novelty: 5, Visual: 5}, types.SchemaKarmaSystem)
	if !errors.Is(err, ErrInvalidRatingRange) {
		t.Fatalf("want ErrInvalidRatingRange, got %v", err)
	}
	_, err = ScoreFit(profile, types.RatingProfile{Fun: -1, Novelty: 5, Visual: 5}, types.SchemaKarmaSystem)
	if !errors.Is(err, ErrInvalidRatingRange) {
		t.Fatalf("want ErrInvalidRatingRange, got %v", err)
	}
}

func TestScoreFitUnknownSchema(t *testing.T) {
	_, err := ScoreFit(heroProfile(), types.RatingProfile{Fun: 5, Novelty: 5, Visual: 5}, types.Schema("time_travel"))
	if !errors.Is(err, ErrUnknownSchema) {
		t.Fatalf("want ErrUnknownSchema, got %v", err)
	}
}

func TestScoreFitDeterministic(t *testing.T) {
	profile := heroProfile()
	ratings := types.RatingProfile{Fun: 3, Novelty: 4, Visual: 5}
	first, err := ScoreFit(profile, ratings, types.SchemaMemorySystem)
	if err != nil {
		t.Fatalf("ScoreFit: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := ScoreFit(profile, ratings, types.SchemaMemorySystem)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, got, first)
		}
	}
}

func TestJaccard(t *testing.T) {
	cases := []struct {
		a, b []string
		want float64
	}{
		{nil, nil, 0},
		{[]string{"x"}, nil, 0},
		{[]string{"a", "b"}, []string{"a", "b"}, 1},
		{[]string{"a", "b", "c"}, []string{"b", "c", "d"}, 0.5},
		{[]string{"a"}, []string{"b"}, 0},
	}
	for _, c := range cases {
		if got := jaccard(c.a, c.b); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("jaccard(%v, %v) = %f, want %f", c.a, c.b, got, c.want)
		}
	}
}
