package ideation

import (
	"sort"
	"strings"

	types "github.com/yungbote/mia-backend/internal/domain"
)

// Analyze maps free narrative text onto the fixed theme, action and subject
// vocabularies. Matching is case-insensitive substring matching, longer
// surfaces claim their span first, and a span consumed by one surface cannot
// be re-counted by a shorter one within the same table. The three tables are
// matched independently. Output tags keep taxonomy table order, so equal
// input always yields byte-equal output.
func Analyze(text string) types.NarrativeProfile {
	profile := types.NarrativeProfile{
		Themes:   []string{},
		Actions:  []string{},
		Subjects: []string{},
		RawText:  text,
	}
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return profile
	}
	t := loadTaxonomy()
	profile.Themes = matchTable(t.Themes, lower)
	profile.Actions = matchTable(t.Actions, lower)
	profile.Subjects = matchTable(t.Subjects, lower)
	return profile
}

type surfaceRef struct {
	surface  string
	entryIdx int
}

// matchTable runs one vocabulary table over the lowercased text. Surfaces
// are tried longest first; a boolean mask over the text marks consumed
// spans so "loses their powers" blocks a later "power" inside it.
func matchTable(entries []tableEntry, lower string) []string {
	refs := make([]surfaceRef, 0, len(entries)*4)
	for i, e := range entries {
		for _, s := range e.Match {
			refs = append(refs, surfaceRef{surface: strings.ToLower(s), entryIdx: i})
		}
	}
	sort.SliceStable(refs, func(a, b int) bool {
		return len(refs[a].surface) > len(refs[b].surface)
	})

	consumed := make([]bool, len(lower))
	matched := make([]bool, len(entries))
	for _, ref := range refs {
		if ref.surface == "" {
			continue
		}
		for from := 0; ; {
			i := strings.Index(lower[from:], ref.surface)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(ref.surface)
			if spanFree(consumed, start, end) {
				for j := start; j < end; j++ {
					consumed[j] = true
				}
				matched[ref.entryIdx] = true
			}
			from = start + 1
		}
	}

	out := []string{}
	for i, e := range entries {
		if matched[i] {
			out = append(out, e.Tag)
		}
	}
	return out
}

func spanFree(consumed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if consumed[i] {
			return false
		}
	}
	return true
}
