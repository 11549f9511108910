package domain

// NarrativeProfile is the structured meaning extracted from a narrative prompt.
// Themes/Actions/Subjects are sets of canonical taxonomy tags, kept in the
// taxonomy's fixed table order so downstream selection stays deterministic.
type NarrativeProfile struct {
	Themes   []string `json:"themes"`
	Actions  []string `json:"actions"`
	Subjects []string `json:"subjects"`
	RawText  string   `json:"raw_text"`
}

// HasTheme reports whether tag is present in the profile's theme set.
func (p NarrativeProfile) HasTheme(tag string) bool {
	for _, t := range p.Themes {
		if t == tag {
			return true
		}
	}
	return false
}
