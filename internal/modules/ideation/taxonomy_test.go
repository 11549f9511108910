package ideation

import (
	"testing"

	types "github.com/yungbote/mia-backend/internal/domain"
)

func TestTaxonomyLoads(t *testing.T) {
	tax := loadTaxonomy()
	if tax == nil {
		t.Fatal("taxonomy failed to load")
	}
	if len(tax.Themes) == 0 || len(tax.Actions) == 0 || len(tax.Subjects) == 0 {
		t.Fatalf("empty vocabulary tables: %d/%d/%d", len(tax.Themes), len(tax.Actions), len(tax.Subjects))
	}
	if got, want := len(tax.Schemas), len(types.AllSchemas()); got != want {
		t.Fatalf("schema entries = %d, want %d", got, want)
	}
}

func TestTaxonomyCoversEverySchema(t *testing.T) {
	for _, s := range types.AllSchemas() {
		spec, ok := metaFor(s)
		if !ok {
			t.Fatalf("no metadata for schema %s", s)
		}
		if spec.Tagline == "" || spec.Verb == "" || spec.Rationale == "" || spec.Description == "" {
			t.Fatalf("schema %s has incomplete metadata: %+v", s, spec)
		}
		if len(spec.Affinity) != 3 {
			t.Fatalf("schema %s affinity = %v, want exactly 3 themes", s, spec.Affinity)
		}
		for _, c := range []int{spec.Center.Fun, spec.Center.Novelty, spec.Center.Visual} {
			if c < 0 || c > 10 {
				t.Fatalf("schema %s rating center out of range: %+v", s, spec.Center)
			}
		}
	}
}

func TestTaxonomyAffinityThemesExist(t *testing.T) {
	tax := loadTaxonomy()
	tags := make(map[string]bool, len(tax.Themes))
	for _, e := range tax.Themes {
		tags[e.Tag] = true
	}
	for _, s := range tax.Schemas {
		for _, th := range s.Affinity {
			if !tags[th] {
				t.Fatalf("schema %s references unknown theme %q", s.ID, th)
			}
		}
	}
}

func TestSchemaTagline(t *testing.T) {
	if got := SchemaTagline(types.SchemaKarmaSystem); got != "Actions have moral consequences" {
		t.Fatalf("tagline = %q", got)
	}
	if got := SchemaTagline(types.Schema("nope")); got != "" {
		t.Fatalf("unknown schema tagline = %q, want empty", got)
	}
}

func TestSchemaAffinityThemesCopy(t *testing.T) {
	a := SchemaAffinityThemes(types.SchemaTransformation)
	if len(a) == 0 {
		t.Fatal("expected affinity themes")
	}
	a[0] = "mutated"
	b := SchemaAffinityThemes(types.SchemaTransformation)
	if b[0] == "mutated" {
		t.Fatal("SchemaAffinityThemes must return a copy")
	}
}
