// Package listview models the catalog list screen: the full fetched
// collection, the post-filter view, the selection set and the search
// panel state. Filtering semantics mirror the server-side query
// service so both paths agree on what matches.
package listview

import (
	"strings"
	"unicode"
)

// Record is the slice of a catalog entry the list screen works with.
type Record struct {
	ID            string
	Name          string
	Brand         string
	SKU           string
	RetailPrice   float64
	StockQuantity int
}

// Filter mirrors the query-service predicates: normalized substring
// containment on name/brand/SKU, an inclusive retail-price range and
// a stock-presence check. Zero fields impose no constraint.
type Filter struct {
	Name     string
	Brand    string
	SKU      string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
}

// Empty reports whether no predicate is set.
func (f Filter) Empty() bool {
	return f.Name == "" && f.Brand == "" && f.SKU == "" &&
		f.MinPrice == nil && f.MaxPrice == nil && !f.InStock
}

// Matches applies every set predicate; they are ANDed.
func (f Filter) Matches(r Record) bool {
	if !containsNormalized(r.Name, f.Name) {
		return false
	}
	if !containsNormalized(r.Brand, f.Brand) {
		return false
	}
	if !containsNormalized(r.SKU, f.SKU) {
		return false
	}
	if f.MinPrice != nil && r.RetailPrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && r.RetailPrice > *f.MaxPrice {
		return false
	}
	if f.InStock && r.StockQuantity <= 0 {
		return false
	}
	return true
}

// Normalize strips all whitespace and lowercases, so "Red Ball"
// contains "redball".
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func containsNormalized(value, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(Normalize(value), Normalize(query))
}

func filterRecords(records []Record, f Filter) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
