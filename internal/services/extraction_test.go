package services

import (
	"strings"
	"testing"

	types "github.com/yungbote/mia-backend/internal/domain"
)

func TestParseMechanicWords(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    [3]string
		wantErr bool
	}{
		{
			name: "clean_json_array",
			raw:  `["time", "rewinds", "world"]`,
			want: [3]string{"time", "rewinds", "world"},
		},
		{
			name: "array_wrapped_in_prose",
			raw:  `Here is the mechanic: ["soul", "returns", "player"] as requested.`,
			want: [3]string{"soul", "returns", "player"},
		},
		{
			name: "quoted_words_without_array",
			raw:  `The words are "gravity", "flips" and "rooms".`,
			want: [3]string{"gravity", "flips", "rooms"},
		},
		{
			name: "uppercase_normalized",
			raw:  `["Time", "REWINDS", "World"]`,
			want: [3]string{"time", "rewinds", "world"},
		},
		{
			name:    "too_few_words",
			raw:     `["time", "rewinds"]`,
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "prose_without_quotes",
			raw:     "the mechanic is time manipulation",
			wantErr: true,
		},
	}

	for _, c := range cases {
		noun, verb, subject, err := parseMechanicWords(c.raw)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error, got %q %q %q", c.name, noun, verb, subject)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got := [3]string{noun, verb, subject}; got != c.want {
			t.Fatalf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestExtractionUserPrompt(t *testing.T) {
	game := types.Game{
		Name:    "Braid",
		Genres:  []string{"Puzzle", "Platformer"},
		Themes:  []string{"Science fiction"},
		Summary: "A puzzle game about manipulating time.",
	}
	prompt := extractionUserPrompt(game)

	for _, want := range []string{"Game: Braid", "Genres: Puzzle, Platformer", "Themes: Science fiction", "JSON array"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestExtractionUserPromptTruncatesSummary(t *testing.T) {
	game := types.Game{Name: "Epic", Summary: strings.Repeat("a", 2000)}
	prompt := extractionUserPrompt(game)
	if strings.Contains(prompt, strings.Repeat("a", 501)) {
		t.Fatal("summary was not truncated")
	}
}

func TestTitleWord(t *testing.T) {
	if got := titleWord("time"); got != "Time" {
		t.Fatalf("titleWord = %q", got)
	}
	if got := titleWord(""); got != "" {
		t.Fatalf("titleWord empty = %q", got)
	}
}
