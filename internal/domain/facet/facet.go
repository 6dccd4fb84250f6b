// Package facet holds decoded facet buckets and their ordering rules.
package facet

import (
	"cmp"
	"slices"
)

// Bucket is one facet value with the number of matching products.
type Bucket struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Set maps facet names to ordered buckets.
type Set map[string][]Bucket

// SortByCount orders buckets by count descending, ties by value ascending.
func SortByCount(b []Bucket) {
	slices.SortStableFunc(b, func(x, y Bucket) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.Value, y.Value)
	})
}

// Ranged is a bucket tagged with the numeric lower bound of its range.
type Ranged struct {
	Bucket
	Lower float64
}

// SortByLowerBound orders range buckets by lower bound ascending and strips the bounds.
func SortByLowerBound(r []Ranged) []Bucket {
	slices.SortStableFunc(r, func(x, y Ranged) int {
		return cmp.Compare(x.Lower, y.Lower)
	})
	out := make([]Bucket, len(r))
	for i := range r {
		out[i] = r[i].Bucket
	}
	return out
}
