package template

import (
	"errors"
	"testing"

	"tabnote/internal/analysis"
)

func TestCatalogHasAllKinds(t *testing.T) {
	ts := Catalog()
	if len(ts) == 0 {
		t.Fatal("empty catalog")
	}
	kinds := map[string]bool{}
	for _, tpl := range ts {
		if tpl.ID == "" || tpl.Title == "" || tpl.Kind == "" {
			t.Fatalf("incomplete template %+v", tpl)
		}
		if _, known := analysis.ParseKind(tpl.Kind); !known {
			t.Fatalf("template %q declares unknown kind %q", tpl.ID, tpl.Kind)
		}
		kinds[tpl.Kind] = true
	}
	for _, k := range analysis.Kinds() {
		if !kinds[string(k)] {
			t.Fatalf("no template covers kind %q", k)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	first := Catalog()
	first[0].Title = "mutated"
	second := Catalog()
	if second[0].Title == "mutated" {
		t.Fatal("catalog leaked internal slice")
	}
}

func TestLookup(t *testing.T) {
	tpl, err := Lookup("chi-square-test")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if tpl.Kind != "chi-square" {
		t.Fatalf("kind = %q", tpl.Kind)
	}
	// Ids are trimmed before matching.
	if _, err := Lookup("  chi-square-test  "); err != nil {
		t.Fatalf("trimmed lookup: %v", err)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("no-such-template")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}
