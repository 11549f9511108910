package ideation

import (
	"fmt"
	"strings"

	types "github.com/yungbote/mia-backend/internal/domain"
)

// Thresholds for the derived suggestion attributes. Complexity reads the
// rating sum (0..30) together with theme/affinity overlap; innovation reads
// the novelty axis together with source diversity.
const (
	complexityHighSum    = 24
	complexityMediumSum  = 14
	complexityHighTheme  = 2
	innovationHighScore  = 8
	innovationMediumMin  = 5
	fallbackSourceTitles = "schema defaults"
)

// Synthesize produces 2 or 3 mechanic suggestions from the analyzed
// narrative, the extracted mechanics and the chosen schema. It yields 3
// suggestions when at least two distinct mechanics and at least one theme
// are available, otherwise 2. Mechanics are paired round-robin as
// (i, i+1 mod n); themes, actions and subjects rotate through their own
// cursors with schema fillers standing in for empty sets. The function is
// pure: identical input yields byte-identical output.
func Synthesize(profile types.NarrativeProfile, mechanics []types.ExtractedMechanic, schema types.Schema, ratings types.RatingProfile) ([]types.Suggestion, error) {
	if !ratings.InRange() {
		return nil, fmt.Errorf("%w: fun=%d novelty=%d visual=%d", ErrInvalidRatingRange, ratings.Fun, ratings.Novelty, ratings.Visual)
	}
	meta, ok := metaFor(schema)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, schema)
	}

	count := 2
	if distinctMechanics(mechanics) >= 2 && len(profile.Themes) >= 1 {
		count = 3
	}

	complexity := deriveComplexity(ratings, meta, profile)

	out := make([]types.Suggestion, 0, count)
	for i := 0; i < count; i++ {
		primary, secondary := pickPair(mechanics, i, meta)
		theme := pickRound(profile.Themes, i, meta.Fillers.Theme)
		action := pickRound(profile.Actions, i, meta.Fillers.Action)
		subject := pickRound(profile.Subjects, i, meta.Fillers.Subject)

		out = append(out, types.Suggestion{
			Title:          fmt.Sprintf("%s Concept %d", schema.DisplayName(), i+1),
			Description:    fillDescription(meta, primary, secondary, theme, subject),
			Complexity:     complexity,
			Innovation:     deriveInnovation(ratings, primary, secondary),
			Rationale:      buildSuggestionRationale(meta, schema, primary, secondary, theme, action),
			SourceTitles:   sourceTitles(primary, secondary),
			SourceMechanic: sourceMechanic(primary, secondary),
		})
	}
	return out, nil
}

func distinctMechanics(mechanics []types.ExtractedMechanic) int {
	seen := make(map[string]bool, len(mechanics))
	for _, m := range mechanics {
		seen[m.SourceTitle+"\x00"+m.Name] = true
	}
	return len(seen)
}

// pickPair selects the primary/secondary mechanic pair for suggestion i.
// Zero mechanics fall back to the schema's filler concept for both roles;
// a single mechanic plays both roles.
func pickPair(mechanics []types.ExtractedMechanic, i int, meta schemaSpec) (types.ExtractedMechanic, types.ExtractedMechanic) {
	switch n := len(mechanics); n {
	case 0:
		filler := types.ExtractedMechanic{Name: meta.Fillers.Mechanic}
		return filler, filler
	case 1:
		return mechanics[0], mechanics[0]
	default:
		return mechanics[i%n], mechanics[(i+1)%n]
	}
}

func pickRound(tags []string, i int, filler string) string {
	if len(tags) == 0 {
		return filler
	}
	return tags[i%len(tags)]
}

func fillDescription(meta schemaSpec, primary, secondary types.ExtractedMechanic, theme, subject string) string {
	return strings.NewReplacer(
		"{{primary}}", primary.Name,
		"{{secondary}}", secondary.Name,
		"{{verb}}", meta.Verb,
		"{{theme}}", theme,
		"{{subject}}", subject,
	).Replace(meta.Description)
}

// deriveComplexity grades the suggestion set as a whole: High needs both a
// strong rating sum and real thematic grounding in the schema, Medium only
// the mid rating sum.
func deriveComplexity(ratings types.RatingProfile, meta schemaSpec, profile types.NarrativeProfile) types.Level {
	overlap := 0
	for _, th := range meta.Affinity {
		if profile.HasTheme(th) {
			overlap++
		}
	}
	sum := ratings.Sum()
	switch {
	case sum >= complexityHighSum && overlap >= complexityHighTheme:
		return types.LevelHigh
	case sum >= complexityMediumSum:
		return types.LevelMedium
	default:
		return types.LevelLow
	}
}

// deriveInnovation grades one suggestion: High needs a high novelty rating
// and mechanics drawn from two different source games.
func deriveInnovation(ratings types.RatingProfile, primary, secondary types.ExtractedMechanic) types.Level {
	crossSource := primary.SourceTitle != "" && secondary.SourceTitle != "" && primary.SourceTitle != secondary.SourceTitle
	switch {
	case ratings.Novelty >= innovationHighScore && crossSource:
		return types.LevelHigh
	case ratings.Novelty >= innovationMediumMin:
		return types.LevelMedium
	default:
		return types.LevelLow
	}
}

func buildSuggestionRationale(meta schemaSpec, schema types.Schema, primary, secondary types.ExtractedMechanic, theme, action string) string {
	return fmt.Sprintf(
		"Anchored in the %q theme with a drive to %s; pairs %q (%s) with %q (%s) because the %s frame favors narratives of %s.",
		theme, action,
		primary.Name, sourceLabel(primary),
		secondary.Name, sourceLabel(secondary),
		schema.DisplayName(), strings.Join(meta.Affinity, ", "),
	)
}

func sourceLabel(m types.ExtractedMechanic) string {
	if m.SourceTitle == "" {
		return fallbackSourceTitles
	}
	return m.SourceTitle
}

func sourceTitles(primary, secondary types.ExtractedMechanic) []string {
	out := []string{}
	for _, t := range []string{primary.SourceTitle, secondary.SourceTitle} {
		if t == "" {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen == t {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

func sourceMechanic(primary, secondary types.ExtractedMechanic) string {
	if primary.Name == secondary.Name && primary.SourceTitle == secondary.SourceTitle {
		return primary.Name
	}
	return primary.Name + " + " + secondary.Name
}
