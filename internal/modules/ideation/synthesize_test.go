package ideation

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	types "github.com/yungbote/mia-backend/internal/domain"
)

func twoMechanics() []types.ExtractedMechanic {
	return []types.ExtractedMechanic{
		{SourceTitle: "The Legend of Zelda: Breath of the Wild", Name: "shrine puzzle chaining", Description: "Shrine puzzle chaining system"},
		{SourceTitle: "Dark Souls", Name: "soul loss recovery", Description: "Soul loss recovery system"},
	}
}

func TestSynthesizeThreeSuggestions(t *testing.T) {
	profile := heroProfile()
	ratings := types.RatingProfile{Fun: 7, Novelty: 9, Visual: 8}

	got, err := Synthesize(profile, twoMechanics(), types.SchemaTransformation, ratings)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got))
	}
	for i, s := range got {
		if s.Title == "" || s.Description == "" || s.Rationale == "" {
			t.Fatalf("suggestion %d has empty fields: %+v", i, s)
		}
		// Rating sum 24 but only one affinity theme present.
		if s.Complexity != types.LevelMedium {
			t.Fatalf("suggestion %d complexity = %s, want Medium", i, s.Complexity)
		}
		if strings.Contains(s.Description, "{{") {
			t.Fatalf("unresolved template slot in %q", s.Description)
		}
	}

	// Pairing is (i, i+1 mod 2): suggestions 0 and 2 pair mechanic 0 with
	// mechanic 1, suggestion 1 the reverse.
	if got[0].SourceMechanic != "shrine puzzle chaining + soul loss recovery" {
		t.Fatalf("suggestion 0 pair = %q", got[0].SourceMechanic)
	}
	if got[1].SourceMechanic != "soul loss recovery + shrine puzzle chaining" {
		t.Fatalf("suggestion 1 pair = %q", got[1].SourceMechanic)
	}
	if got[2].SourceMechanic != got[0].SourceMechanic {
		t.Fatalf("suggestion 2 should repeat the cursor cycle, got %q", got[2].SourceMechanic)
	}

	// Novelty 9 with two distinct source games.
	for i, s := range got {
		if s.Innovation != types.LevelHigh {
			t.Fatalf("suggestion %d innovation = %s, want High", i, s.Innovation)
		}
		if len(s.SourceTitles) != 2 {
			t.Fatalf("suggestion %d source titles = %v", i, s.SourceTitles)
		}
	}
}

func TestSynthesizeRoundRobinThemes(t *testing.T) {
	profile := heroProfile() // 4 themes, 2 actions, 3 subjects
	got, err := Synthesize(profile, twoMechanics(), types.SchemaNarrativeChoice, types.RatingProfile{Fun: 7, Novelty: 9, Visual: 8})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	for i, s := range got {
		theme := profile.Themes[i%len(profile.Themes)]
		if !strings.Contains(s.Rationale, theme) {
			t.Fatalf("suggestion %d rationale misses its round-robin theme %q: %q", i, theme, s.Rationale)
		}
	}
}

func TestSynthesizeSingleMechanic(t *testing.T) {
	one := twoMechanics()[:1]
	got, err := Synthesize(heroProfile(), one, types.SchemaMemorySystem, types.RatingProfile{Fun: 7, Novelty: 9, Visual: 8})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("one mechanic should yield 2 suggestions, got %d", len(got))
	}
	for i, s := range got {
		if s.SourceMechanic != "shrine puzzle chaining" {
			t.Fatalf("suggestion %d pair = %q, want the single mechanic alone", i, s.SourceMechanic)
		}
		if len(s.SourceTitles) != 1 {
			t.Fatalf("suggestion %d source titles = %v", i, s.SourceTitles)
		}
		// Same source game on both sides caps innovation at Medium.
		if s.Innovation != types.LevelMedium {
			t.Fatalf("suggestion %d innovation = %s, want Medium", i, s.Innovation)
		}
	}
}

func TestSynthesizeNoMechanics(t *testing.T) {
	got, err := Synthesize(heroProfile(), nil, types.SchemaTransformation, types.RatingProfile{Fun: 7, Novelty: 9, Visual: 8})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("no mechanics should yield 2 suggestions, got %d", len(got))
	}
	for i, s := range got {
		if s.SourceMechanic != "growth track" {
			t.Fatalf("suggestion %d should use the schema filler mechanic, got %q", i, s.SourceMechanic)
		}
		if len(s.SourceTitles) != 0 {
			t.Fatalf("suggestion %d source titles should be empty, got %v", i, s.SourceTitles)
		}
	}
}

func TestSynthesizeEmptyNarrativeUsesFillers(t *testing.T) {
	profile := Analyze("")
	got, err := Synthesize(profile, twoMechanics(), types.SchemaCooperation, types.RatingProfile{Fun: 5, Novelty: 5, Visual: 5})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("no themes should cap output at 2 suggestions, got %d", len(got))
	}
	for i, s := range got {
		if !strings.Contains(s.Description, "common cause") {
			t.Fatalf("suggestion %d should fall back to the schema theme filler: %q", i, s.Description)
		}
		if !strings.Contains(s.Description, "the group") {
			t.Fatalf("suggestion %d should fall back to the schema subject filler: %q", i, s.Description)
		}
	}
}

func TestSynthesizeComplexityLevels(t *testing.T) {
	mechanics := twoMechanics()
	// transformation affinity holds transformation, loss-of-power and
	// identity; this prompt hits two of them.
	profile := Analyze("The hero loses their powers and must transform to learn the truth")

	cases := []struct {
		name    string
		ratings types.RatingProfile
		want    types.Level
	}{
		{"high sum with affinity grounding", types.RatingProfile{Fun: 8, Novelty: 8, Visual: 8}, types.LevelHigh},
		{"mid sum", types.RatingProfile{Fun: 5, Novelty: 5, Visual: 5}, types.LevelMedium},
		{"low sum", types.RatingProfile{Fun: 2, Novelty: 2, Visual: 2}, types.LevelLow},
	}
	for _, c := range cases {
		got, err := Synthesize(profile, mechanics, types.SchemaTransformation, c.ratings)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		for i, s := range got {
			if s.Complexity != c.want {
				t.Fatalf("%s: suggestion %d complexity = %s, want %s", c.name, i, s.Complexity, c.want)
			}
		}
	}
}

func TestSynthesizeInnovationLow(t *testing.T) {
	got, err := Synthesize(heroProfile(), twoMechanics(), types.SchemaKarmaSystem, types.RatingProfile{Fun: 9, Novelty: 2, Visual: 9})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	for i, s := range got {
		if s.Innovation != types.LevelLow {
			t.Fatalf("suggestion %d innovation = %s, want Low at novelty 2", i, s.Innovation)
		}
	}
}

func TestSynthesizeValidation(t *testing.T) {
	_, err := Synthesize(heroProfile(), nil, types.SchemaKarmaSystem, types.RatingProfile{Fun: 11, Novelty: 0, Visual: 0})
	if !errors.Is(err, ErrInvalidRatingRange) {
		t.Fatalf("want ErrInvalidRatingRange, got %v", err)
	}
	_, err = Synthesize(heroProfile(), nil, types.Schema("bullet_time"), types.RatingProfile{Fun: 5, Novelty: 5, Visual: 5})
	if !errors.Is(err, ErrUnknownSchema) {
		t.Fatalf("want ErrUnknownSchema, got %v", err)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	profile := heroProfile()
	mechanics := twoMechanics()
	ratings := types.RatingProfile{Fun: 7, Novelty: 9, Visual: 8}
	first, err := Synthesize(profile, mechanics, types.SchemaTransformation, ratings)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := Synthesize(profile, mechanics, types.SchemaTransformation, ratings)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged", i)
		}
	}
}
