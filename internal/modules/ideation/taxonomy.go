// Package ideation holds the pure decision core of the mechanic ideation
// flow: narrative analysis, schema-fit scoring and suggestion synthesis.
// Everything in this package is deterministic and free of I/O; the embedded
// taxonomy is the single source of vocabulary and schema metadata.
package ideation

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/mia-backend/internal/domain"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

type tableEntry struct {
	Tag   string   `yaml:"tag"`
	Match []string `yaml:"match"`
}

type ratingCenter struct {
	Fun     int `yaml:"fun"`
	Novelty int `yaml:"novelty"`
	Visual  int `yaml:"visual"`
}

type schemaFillers struct {
	Theme    string `yaml:"theme"`
	Action   string `yaml:"action"`
	Subject  string `yaml:"subject"`
	Mechanic string `yaml:"mechanic"`
}

type schemaSpec struct {
	ID          string        `yaml:"id"`
	Tagline     string        `yaml:"tagline"`
	Affinity    []string      `yaml:"affinity"`
	Center      ratingCenter  `yaml:"center"`
	Verb        string        `yaml:"verb"`
	Fillers     schemaFillers `yaml:"fillers"`
	Rationale   string        `yaml:"rationale"`
	Description string        `yaml:"description"`
}

type taxonomy struct {
	Themes   []tableEntry `yaml:"themes"`
	Actions  []tableEntry `yaml:"actions"`
	Subjects []tableEntry `yaml:"subjects"`
	Schemas  []schemaSpec `yaml:"schemas"`

	schemaByID map[types.Schema]schemaSpec
}

var (
	taxOnce sync.Once
	tax     *taxonomy
)

// loadTaxonomy parses the embedded taxonomy exactly once. The data is
// compiled into the binary, so a parse or validation failure is a build
// defect and panics rather than limping along with empty tables.
func loadTaxonomy() *taxonomy {
	taxOnce.Do(func() {
		t := &taxonomy{}
		if err := yaml.Unmarshal(taxonomyYAML, t); err != nil {
			panic(fmt.Sprintf("ideation: embedded taxonomy is invalid yaml: %v", err))
		}
		if err := t.validate(); err != nil {
			panic(fmt.Sprintf("ideation: embedded taxonomy failed validation: %v", err))
		}
		t.schemaByID = make(map[types.Schema]schemaSpec, len(t.Schemas))
		for _, s := range t.Schemas {
			t.schemaByID[types.Schema(s.ID)] = s
		}
		tax = t
	})
	return tax
}

func (t *taxonomy) validate() error {
	for _, tbl := range []struct {
		name    string
		entries []tableEntry
	}{
		{"themes", t.Themes},
		{"actions", t.Actions},
		{"subjects", t.Subjects},
	} {
		if len(tbl.entries) == 0 {
			return fmt.Errorf("table %s is empty", tbl.name)
		}
		seen := make(map[string]bool, len(tbl.entries))
		for _, e := range tbl.entries {
			if e.Tag == "" {
				return fmt.Errorf("table %s has an entry with no tag", tbl.name)
			}
			if seen[e.Tag] {
				return fmt.Errorf("table %s repeats tag %q", tbl.name, e.Tag)
			}
			seen[e.Tag] = true
			if len(e.Match) == 0 {
				return fmt.Errorf("table %s tag %q has no match surfaces", tbl.name, e.Tag)
			}
		}
	}

	themeTags := make(map[string]bool, len(t.Themes))
	for _, e := range t.Themes {
		themeTags[e.Tag] = true
	}

	if got, want := len(t.Schemas), len(types.AllSchemas()); got != want {
		return fmt.Errorf("expected %d schema entries, found %d", want, got)
	}
	for i, s := range t.Schemas {
		sc := types.Schema(s.ID)
		if !sc.Valid() {
			return fmt.Errorf("schema entry %q is not a known schema", s.ID)
		}
		if sc.EnumIndex() != i {
			return fmt.Errorf("schema %q out of canonical order", s.ID)
		}
		if len(s.Affinity) == 0 {
			return fmt.Errorf("schema %q has no affinity themes", s.ID)
		}
		for _, th := range s.Affinity {
			if !themeTags[th] {
				return fmt.Errorf("schema %q affinity theme %q not in theme table", s.ID, th)
			}
		}
		if s.Verb == "" || s.Rationale == "" || s.Description == "" {
			return fmt.Errorf("schema %q is missing template text", s.ID)
		}
		if s.Fillers.Theme == "" || s.Fillers.Action == "" || s.Fillers.Subject == "" || s.Fillers.Mechanic == "" {
			return fmt.Errorf("schema %q is missing fillers", s.ID)
		}
	}
	return nil
}

func metaFor(s types.Schema) (schemaSpec, bool) {
	spec, ok := loadTaxonomy().schemaByID[s]
	return spec, ok
}

// SchemaTagline returns the short descriptive line shown next to a schema
// in selection UIs. Unknown schemas yield an empty string.
func SchemaTagline(s types.Schema) string {
	spec, ok := metaFor(s)
	if !ok {
		return ""
	}
	return spec.Tagline
}

// SchemaAffinityThemes returns the narrative themes a schema is tuned for,
// in canonical order. The returned slice is a copy.
func SchemaAffinityThemes(s types.Schema) []string {
	spec, ok := metaFor(s)
	if !ok {
		return nil
	}
	out := make([]string, len(spec.Affinity))
	copy(out, spec.Affinity)
	return out
}
