package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"motodealer/internal/domain"
)

// Criteria is the storefront filter set. Zero values mean "no constraint";
// price bounds are inclusive and independent of each other.
type Criteria struct {
	Query         string
	CategoryID    string
	SubcategoryID string
	MinPrice      *float64
	MaxPrice      *float64
}

// Minimum weighted similarity for a fuzzy match to survive.
const scoreThreshold = 0.5

// Field weights for the fuzzy query. Name dominates; description only breaks
// in when nothing stronger matches.
var fieldWeights = []struct {
	weight float64
	get    func(domain.Product) string
}{
	{1.0, func(p domain.Product) string { return p.Name }},
	{0.8, func(p domain.Product) string { return deref(p.Brand) }},
	{0.8, func(p domain.Product) string { return deref(p.Model) }},
	{0.4, func(p domain.Product) string { return deref(p.Description) }},
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Apply derives the visible subset of products for the given criteria. It is
// pure: no I/O, no mutation of the input slice, same output for same input.
// A non-empty query reorders by relevance; otherwise the input order (most
// recent first) is kept. Products without a price never satisfy an active
// price bound.
func Apply(products []domain.Product, c Criteria) []domain.Product {
	out := products
	if q := strings.TrimSpace(c.Query); q != "" {
		out = rankByQuery(out, q)
	}
	out = filter(out, func(p domain.Product) bool {
		if c.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != c.CategoryID) {
			return false
		}
		if c.SubcategoryID != "" && (p.SubcategoryID == nil || *p.SubcategoryID != c.SubcategoryID) {
			return false
		}
		if c.MinPrice != nil && (p.Price == nil || *p.Price < *c.MinPrice) {
			return false
		}
		if c.MaxPrice != nil && (p.Price == nil || *p.Price > *c.MaxPrice) {
			return false
		}
		return true
	})
	return out
}

func filter(in []domain.Product, keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

type ranked struct {
	p     domain.Product
	score float64
}

func rankByQuery(products []domain.Product, query string) []domain.Product {
	q := strings.ToLower(query)
	hits := make([]ranked, 0, len(products))
	for _, p := range products {
		// The threshold gates on raw similarity so a clean hit on a
		// low-weight field (description) still qualifies; the weighted
		// score only decides the ordering.
		bestRaw, bestWeighted := 0.0, 0.0
		for _, f := range fieldWeights {
			s := similarity(q, strings.ToLower(f.get(p)))
			if s > bestRaw {
				bestRaw = s
			}
			if w := s * f.weight; w > bestWeighted {
				bestWeighted = w
			}
		}
		if bestRaw >= scoreThreshold {
			hits = append(hits, ranked{p: p, score: bestWeighted})
		}
	}
	// Stable: ties keep the original (most-recent-first) order.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	out := make([]domain.Product, len(hits))
	for i, h := range hits {
		out[i] = h.p
	}
	return out
}

// similarity scores query q against field text in [0,1]. Containment is a
// strong match; otherwise the best normalized edit distance against any
// single word of the field decides.
func similarity(q, text string) float64 {
	if q == "" || text == "" {
		return 0
	}
	if strings.Contains(text, q) {
		return 1
	}
	best := 0.0
	for _, word := range strings.Fields(text) {
		d := levenshtein.ComputeDistance(q, word)
		max := len([]rune(q))
		if l := len([]rune(word)); l > max {
			max = l
		}
		if s := 1 - float64(d)/float64(max); s > best {
			best = s
		}
	}
	return best
}
