package domain

// SchemaCandidate is an alternate schema paired with the confidence of the
// ranking that produced it.
type SchemaCandidate struct {
	Schema     Schema  `json:"schema"`
	Confidence float64 `json:"confidence"`
}

// FitAssessment is the advisory output of the schema-fit scorer. It is
// recomputed on every narrative/schema/rating change and never persisted.
// MismatchScore is the unweighted sum of the three gap components, in [0,3].
type FitAssessment struct {
	MismatchScore      float64           `json:"mismatch_score"`
	RecommendAlternate bool              `json:"recommend_alternate"`
	Alternates         []SchemaCandidate `json:"alternates"`
	Rationale          string            `json:"rationale"`
}
