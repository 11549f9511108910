package ideation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	types "github.com/yungbote/mia-backend/internal/domain"
)

// Weights applied when reporting the blended mismatch figure. The decision
// itself runs on the unweighted gap sum so each gap keeps its full voice.
const (
	WeightThemeGap    = 0.5
	WeightRatingGap   = 0.25
	WeightAffinityGap = 0.25

	// DefaultMismatchThreshold is the comfort line on the unweighted gap
	// sum; strictly above it the scorer recommends looking at alternates.
	DefaultMismatchThreshold = 2.5

	// neutralThemeGap stands in when the narrative produced no themes at
	// all, so an empty profile neither condemns nor endorses a schema.
	neutralThemeGap = 0.5
)

// ScoreFit judges how well the selected schema fits the analyzed narrative
// and the designer's ratings, using the default threshold.
func ScoreFit(profile types.NarrativeProfile, ratings types.RatingProfile, selected types.Schema) (types.FitAssessment, error) {
	return ScoreFitWithThreshold(profile, ratings, selected, DefaultMismatchThreshold)
}

// ScoreFitWithThreshold is ScoreFit with a caller-chosen comfort threshold.
// The mismatch score is the sum of three gaps, each in [0, 1]:
//
//	theme gap:    1 - Jaccard(narrative themes, schema affinity themes)
//	rating gap:   mean absolute distance from the schema's rating center / 10
//	affinity gap: 0 if the schema ranks in the top 3 by theme overlap, else 1
//
// Alternates are populated only when a switch is recommended.
func ScoreFitWithThreshold(profile types.NarrativeProfile, ratings types.RatingProfile, selected types.Schema, threshold float64) (types.FitAssessment, error) {
	if !ratings.InRange() {
		return types.FitAssessment{}, fmt.Errorf("%w: fun=%d novelty=%d visual=%d", ErrInvalidRatingRange, ratings.Fun, ratings.Novelty, ratings.Visual)
	}
	meta, ok := metaFor(selected)
	if !ok {
		return types.FitAssessment{}, fmt.Errorf("%w: %q", ErrUnknownSchema, selected)
	}

	themeGap := neutralThemeGap
	if len(profile.Themes) > 0 {
		themeGap = 1 - jaccard(profile.Themes, meta.Affinity)
	}
	ratingGap := ratingDistance(ratings, meta.Center)

	ranked := rankByOverlap(profile.Themes)
	affinityGap := 1.0
	for i := 0; i < 3 && i < len(ranked); i++ {
		if ranked[i].Schema == selected {
			affinityGap = 0
			break
		}
	}

	score := themeGap + ratingGap + affinityGap
	recommend := score > threshold

	out := types.FitAssessment{
		MismatchScore:      score,
		RecommendAlternate: recommend,
		Rationale:          buildFitRationale(meta, profile, themeGap, ratingGap, affinityGap, score, threshold, recommend),
	}
	if recommend {
		out.Alternates = alternatesFor(ranked, selected)
	}
	return out, nil
}

// alternatesFor returns the top 3 of the other nine schemas, ranked by theme
// overlap with enum order breaking ties. Confidence is each schema's own
// Jaccard overlap, so an alternate with zero overlap is visibly a shrug.
func alternatesFor(ranked []types.SchemaCandidate, selected types.Schema) []types.SchemaCandidate {
	out := make([]types.SchemaCandidate, 0, 3)
	for _, c := range ranked {
		if c.Schema == selected {
			continue
		}
		out = append(out, c)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// rankByOverlap orders all ten schemas by Jaccard overlap between the
// narrative themes and each schema's affinity set, descending, ties broken
// by canonical enum order.
func rankByOverlap(themes []string) []types.SchemaCandidate {
	all := types.AllSchemas()
	out := make([]types.SchemaCandidate, 0, len(all))
	for _, s := range all {
		spec, _ := metaFor(s)
		out = append(out, types.SchemaCandidate{
			Schema:     s,
			Confidence: jaccard(themes, spec.Affinity),
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Confidence != out[b].Confidence {
			return out[a].Confidence > out[b].Confidence
		}
		return out[a].Schema.EnumIndex() < out[b].Schema.EnumIndex()
	})
	return out
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}
	inter := 0
	union := len(set)
	for _, s := range b {
		if set[s] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func ratingDistance(r types.RatingProfile, c ratingCenter) float64 {
	d := math.Abs(float64(r.Fun-c.Fun)) + math.Abs(float64(r.Novelty-c.Novelty)) + math.Abs(float64(r.Visual-c.Visual))
	return d / 3 / 10
}

func buildFitRationale(meta schemaSpec, profile types.NarrativeProfile, themeGap, ratingGap, affinityGap, score, threshold float64, recommend bool) string {
	theme1 := meta.Fillers.Theme
	theme2 := meta.Fillers.Theme
	if len(profile.Themes) > 0 {
		theme1 = profile.Themes[0]
		theme2 = theme1
	}
	if len(profile.Themes) > 1 {
		theme2 = profile.Themes[1]
	}
	r := strings.NewReplacer("{{theme1}}", theme1, "{{theme2}}", theme2)

	var b strings.Builder
	b.WriteString(r.Replace(meta.Rationale))
	weighted := WeightThemeGap*themeGap + WeightRatingGap*ratingGap + WeightAffinityGap*affinityGap
	fmt.Fprintf(&b, " Theme gap %.2f, rating gap %.2f, affinity gap %.0f (weighted blend %.2f).", themeGap, ratingGap, affinityGap, weighted)
	if recommend {
		fmt.Fprintf(&b, " Overall mismatch %.2f exceeds the %.2f comfort line, so an alternate frame is worth a look.", score, threshold)
	} else {
		fmt.Fprintf(&b, " Overall mismatch %.2f sits inside the %.2f comfort line.", score, threshold)
	}
	return b.String()
}
