package domain

// ExtractedMechanic is the structured description of a real game's
// distinguishing mechanic, produced by the extraction adapter and consumed
// read-only by the synthesizer. Description may be empty.
type ExtractedMechanic struct {
	SourceTitle string `json:"source_title"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
