package services

import (
	"fmt"
	"strings"

	"github.com/yungbote/mia-backend/internal/platform/logger"

	types "github.com/yungbote/mia-backend/internal/domain"
)

// ExportService renders a locked idea as a self-contained markdown summary
// for download.
type ExportService interface {
	Markdown(idea *types.LockedIdea) string
	Filename(idea *types.LockedIdea) string
}

type exportService struct {
	log *logger.Logger
}

func NewExportService(baseLog *logger.Logger) ExportService {
	return &exportService{log: baseLog.With("service", "ExportService")}
}

func (s *exportService) Markdown(idea *types.LockedIdea) string {
	if idea == nil {
		return ""
	}

	gameNames := make([]string, 0, len(idea.SelectedGames))
	for _, g := range idea.SelectedGames {
		gameNames = append(gameNames, g.Name)
	}

	var b strings.Builder
	b.WriteString("# Mechanic Ideation Summary\n")
	fmt.Fprintf(&b, "**Generated on:** %s\n\n", idea.LockedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("## Selected Inputs\n")
	fmt.Fprintf(&b, "**Narrative Prompt:** %s\n\n", idea.NarrativePrompt)
	fmt.Fprintf(&b, "**Source Games:** %s\n\n", strings.Join(gameNames, ", "))
	fmt.Fprintf(&b, "**Mechanic Schema:** %s\n\n", idea.Schema.DisplayName())

	b.WriteString("## Ratings\n")
	fmt.Fprintf(&b, "- **Fun Rating:** %d/10\n", idea.Ratings.Fun)
	fmt.Fprintf(&b, "- **Novelty Rating:** %d/10\n", idea.Ratings.Novelty)
	fmt.Fprintf(&b, "- **Visual Appeal Rating:** %d/10\n\n", idea.Ratings.Visual)

	b.WriteString("## Generated Mechanic Suggestions\n")
	for _, sug := range idea.Suggestions {
		fmt.Fprintf(&b, "\n### %s\n", sug.Title)
		fmt.Fprintf(&b, "**Description:** %s\n\n", sug.Description)

		b.WriteString("**Source Analysis:**\n")
		sources := strings.Join(sug.SourceTitles, ", ")
		if sources == "" {
			sources = "schema defaults"
		}
		fmt.Fprintf(&b, "- **Source Games:** %s\n", sources)
		fmt.Fprintf(&b, "- **Source Mechanic:** %s\n", sug.SourceMechanic)
		fmt.Fprintf(&b, "- **Rationale:** %s\n\n", sug.Rationale)

		b.WriteString("**Design Attributes:**\n")
		fmt.Fprintf(&b, "- **Complexity:** %s\n", sug.Complexity)
		fmt.Fprintf(&b, "- **Innovation Level:** %s\n", sug.Innovation)
	}

	return b.String()
}

func (s *exportService) Filename(idea *types.LockedIdea) string {
	if idea == nil {
		return "mechanic_summary.md"
	}
	return fmt.Sprintf("mechanic_summary_%s.md", idea.LockedAt.Format("20060102_150405"))
}
