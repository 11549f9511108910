package domain

// Level grades a suggestion attribute. Values are derived purely from the
// rating profile and schema metadata, never randomized.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Suggestion is one synthesized mechanic idea. Rationale is mandatory: the
// product's value is being able to say why a suggestion exists.
type Suggestion struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Complexity     Level    `json:"complexity"`
	Innovation     Level    `json:"innovation"`
	Rationale      string   `json:"rationale"`
	SourceTitles   []string `json:"source_titles"`
	SourceMechanic string   `json:"source_mechanic"`
}
