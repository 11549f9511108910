package services

import (
	"strings"
	"testing"
	"time"

	types "github.com/yungbote/mia-backend/internal/domain"
)

func TestExportMarkdown(t *testing.T) {
	svc := NewExportService(testLogger(t))

	idea := &types.LockedIdea{
		NarrativePrompt: "A hero loses their powers and must find a new way to save the world",
		SelectedGames:   testGames(2),
		Mechanics:       testMechanics(),
		Schema:          types.SchemaTransformation,
		Ratings:         types.RatingProfile{Fun: 7, Novelty: 9, Visual: 8},
		Suggestions: []types.Suggestion{
			{
				Title:          "Transformation Concept 1",
				Description:    "A progression system.",
				Complexity:     types.LevelMedium,
				Innovation:     types.LevelHigh,
				Rationale:      "Anchored in loss-of-power.",
				SourceTitles:   []string{"Braid", "Journey"},
				SourceMechanic: "time rewinds world + chirp links strangers",
			},
		},
		LockedAt: time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC),
	}

	md := svc.Markdown(idea)

	for _, want := range []string{
		"# Mechanic Ideation Summary",
		"**Generated on:** 2026-08-25 10:30:00",
		"**Narrative Prompt:** A hero loses their powers",
		"**Source Games:** Braid, Journey",
		"**Mechanic Schema:** Transformation",
		"- **Fun Rating:** 7/10",
		"- **Novelty Rating:** 9/10",
		"- **Visual Appeal Rating:** 8/10",
		"### Transformation Concept 1",
		"- **Source Mechanic:** time rewinds world + chirp links strangers",
		"- **Complexity:** Medium",
		"- **Innovation Level:** High",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestExportMarkdownNoSources(t *testing.T) {
	svc := NewExportService(testLogger(t))
	idea := &types.LockedIdea{
		Schema:  types.SchemaCooperation,
		Ratings: types.RatingProfile{Fun: 5, Novelty: 5, Visual: 5},
		Suggestions: []types.Suggestion{
			{Title: "Cooperation Concept 1", SourceMechanic: "shared action"},
		},
		LockedAt: time.Now(),
	}
	md := svc.Markdown(idea)
	if !strings.Contains(md, "- **Source Games:** schema defaults") {
		t.Fatalf("missing fallback source label:\n%s", md)
	}
}

func TestExportMarkdownNil(t *testing.T) {
	svc := NewExportService(testLogger(t))
	if got := svc.Markdown(nil); got != "" {
		t.Fatalf("nil idea should render empty, got %q", got)
	}
	if got := svc.Filename(nil); got != "mechanic_summary.md" {
		t.Fatalf("nil filename = %q", got)
	}
}

func TestExportFilename(t *testing.T) {
	svc := NewExportService(testLogger(t))
	idea := &types.LockedIdea{LockedAt: time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)}
	if got := svc.Filename(idea); got != "mechanic_summary_20260825_103000.md" {
		t.Fatalf("filename = %q", got)
	}
}
