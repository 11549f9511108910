package domain

import "strings"

// Schema is one of the 10 fixed mechanic-design frameworks a user can pick to
// frame a generated mechanic. The enumeration order below is the canonical
// order used for all tie-breaks.
type Schema string

const (
	SchemaEmotionStates            Schema = "emotion_states"
	SchemaKarmaSystem              Schema = "karma_system"
	SchemaResourceTradeoff         Schema = "resource_tradeoff"
	SchemaTransformation           Schema = "transformation"
	SchemaCooperation              Schema = "cooperation"
	SchemaEnvironmentalInteraction Schema = "environmental_interaction"
	SchemaMemorySystem             Schema = "memory_system"
	SchemaSocialDynamics           Schema = "social_dynamics"
	SchemaPuzzleIntegration        Schema = "puzzle_integration"
	SchemaNarrativeChoice          Schema = "narrative_choice"
)

var allSchemas = []Schema{
	SchemaEmotionStates,
	SchemaKarmaSystem,
	SchemaResourceTradeoff,
	SchemaTransformation,
	SchemaCooperation,
	SchemaEnvironmentalInteraction,
	SchemaMemorySystem,
	SchemaSocialDynamics,
	SchemaPuzzleIntegration,
	SchemaNarrativeChoice,
}

// AllSchemas returns the 10 schemas in canonical enumeration order.
func AllSchemas() []Schema {
	out := make([]Schema, len(allSchemas))
	copy(out, allSchemas)
	return out
}

func (s Schema) Valid() bool {
	for _, known := range allSchemas {
		if s == known {
			return true
		}
	}
	return false
}

// EnumIndex returns the schema's position in the canonical order, or -1.
func (s Schema) EnumIndex() int {
	for i, known := range allSchemas {
		if s == known {
			return i
		}
	}
	return -1
}

func (s Schema) DisplayName() string {
	parts := strings.Split(string(s), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// ParseSchema accepts the wire value ("karma_system") or the display form
// ("Karma System", with or without a " - ..." tagline suffix).
func ParseSchema(raw string) (Schema, bool) {
	v := strings.TrimSpace(raw)
	if i := strings.Index(v, " - "); i > 0 {
		v = v[:i]
	}
	v = strings.ToLower(strings.TrimSpace(v))
	v = strings.ReplaceAll(v, " ", "_")
	s := Schema(v)
	if s.Valid() {
		return s, true
	}
	return "", false
}
