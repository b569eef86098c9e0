package catalog_test

import (
	"testing"

	"motodealer/internal/catalog"
	"motodealer/internal/domain"
)

func sptr(s string) *string   { return &s }
func fptr(v float64) *float64 { return &v }

func fixture() []domain.Product {
	// Most-recent-first, as the repo returns them.
	return []domain.Product{
		{ID: "p1", Name: "Honda CBR 500", Brand: sptr("Honda"), Model: sptr("CBR 500R"),
			CategoryID: sptr("cat-motos"), SubcategoryID: sptr("sub-deportivas"), Price: fptr(6500)},
		{ID: "p2", Name: "Yamaha DT 175", Brand: sptr("Yamaha"), Model: sptr("DT 175"),
			CategoryID: sptr("cat-motos"), SubcategoryID: sptr("sub-enduro")}, // price on request
		{ID: "p3", Name: "Casco LS2 Rapid", CategoryID: sptr("cat-cascos"), Price: fptr(85),
			Description: sptr("Casco integral certificado")},
	}
}

func ids(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestEmptyCriteriaKeepsEverything(t *testing.T) {
	in := fixture()
	out := catalog.Apply(in, catalog.Criteria{})
	if len(out) != len(in) {
		t.Fatalf("want %d, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].ID != in[i].ID {
			t.Fatalf("order changed at %d: %v", i, ids(out))
		}
	}
}

func TestEmptyCollection(t *testing.T) {
	out := catalog.Apply(nil, catalog.Criteria{Query: "honda", CategoryID: "cat-motos"})
	if len(out) != 0 {
		t.Fatalf("want empty, got %v", ids(out))
	}
}

func TestCategoryNoMatches(t *testing.T) {
	out := catalog.Apply(fixture(), catalog.Criteria{CategoryID: "A"})
	if len(out) != 0 {
		t.Fatalf("want empty, got %v", ids(out))
	}
}

func TestCategoryAndSubcategory(t *testing.T) {
	out := catalog.Apply(fixture(), catalog.Criteria{CategoryID: "cat-motos"})
	if got := ids(out); len(got) != 2 || got[0] != "p1" || got[1] != "p2" {
		t.Fatalf("category filter wrong: %v", got)
	}

	out = catalog.Apply(fixture(), catalog.Criteria{CategoryID: "cat-motos", SubcategoryID: "sub-enduro"})
	if got := ids(out); len(got) != 1 || got[0] != "p2" {
		t.Fatalf("subcategory filter wrong: %v", got)
	}
}

func TestFuzzyPartialQuery(t *testing.T) {
	out := catalog.Apply(fixture(), catalog.Criteria{Query: "Hond"})
	if len(out) == 0 || out[0].ID != "p1" {
		t.Fatalf("partial query should find the Honda: %v", ids(out))
	}
}

func TestFuzzyTypoQuery(t *testing.T) {
	out := catalog.Apply(fixture(), catalog.Criteria{Query: "Yamha"})
	if len(out) == 0 || out[0].ID != "p2" {
		t.Fatalf("typo query should find the Yamaha: %v", ids(out))
	}
}

func TestFuzzyNoResemblance(t *testing.T) {
	out := catalog.Apply(fixture(), catalog.Criteria{Query: "zzqqxx"})
	if len(out) != 0 {
		t.Fatalf("gibberish should match nothing: %v", ids(out))
	}
}

func TestQueryMatchesDescription(t *testing.T) {
	out := catalog.Apply(fixture(), catalog.Criteria{Query: "integral"})
	if len(out) != 1 || out[0].ID != "p3" {
		t.Fatalf("description match failed: %v", ids(out))
	}
}

func TestPriceBoundsExcludeUnpriced(t *testing.T) {
	// p2 has no price: any active bound must exclude it.
	out := catalog.Apply(fixture(), catalog.Criteria{MinPrice: fptr(0)})
	for _, p := range out {
		if p.ID == "p2" {
			t.Fatal("unpriced product satisfied a price bound")
		}
	}

	out = catalog.Apply(fixture(), catalog.Criteria{MinPrice: fptr(100), MaxPrice: fptr(7000)})
	if got := ids(out); len(got) != 1 || got[0] != "p1" {
		t.Fatalf("band filter wrong: %v", got)
	}

	// Inclusive bounds.
	out = catalog.Apply(fixture(), catalog.Criteria{MinPrice: fptr(85), MaxPrice: fptr(85)})
	if got := ids(out); len(got) != 1 || got[0] != "p3" {
		t.Fatalf("inclusive bound wrong: %v", got)
	}
}

func TestPurity(t *testing.T) {
	in := fixture()
	crit := catalog.Criteria{Query: "honda", CategoryID: "cat-motos"}
	a := catalog.Apply(in, crit)
	b := catalog.Apply(in, crit)
	if len(a) != len(b) {
		t.Fatal("same input, different output")
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatal("same input, different order")
		}
	}
	// Input order untouched.
	if in[0].ID != "p1" || in[1].ID != "p2" || in[2].ID != "p3" {
		t.Fatal("input slice mutated")
	}
}

func TestTieBreakKeepsCollectionOrder(t *testing.T) {
	in := []domain.Product{
		{ID: "new", Name: "Bera SBR"},
		{ID: "old", Name: "Bera SBR"},
	}
	out := catalog.Apply(in, catalog.Criteria{Query: "Bera"})
	if got := ids(out); len(got) != 2 || got[0] != "new" || got[1] != "old" {
		t.Fatalf("equal scores must keep original order: %v", got)
	}
}
