// Package aggregation describes the facet aggregations requested from the engine.
package aggregation

import (
	"errors"
	"fmt"
	"math"
)

// OrderKey is the sort key of a bucket order rule.
type OrderKey string

const (
	// OrderCount orders by bucket document count.
	OrderCount OrderKey = "_count"
	// OrderKeyValue orders by bucket key.
	OrderKeyValue OrderKey = "_key"
)

// Order is one bucket ordering rule; rules apply in sequence as tie-breakers.
// By is either OrderCount, OrderKeyValue, or the name of a single-bucket sub-aggregation.
type Order struct {
	By        OrderKey
	Ascending bool
}

// ByCountDesc orders by document count, highest first.
func ByCountDesc() Order { return Order{By: OrderCount} }

// ByKeyAsc orders by key, lexicographically ascending.
func ByKeyAsc() Order { return Order{By: OrderKeyValue, Ascending: true} }

// BySubAggDesc orders by the document count of a single-bucket sub-aggregation.
func BySubAggDesc(name string) Order { return Order{By: OrderKey(name)} }

// Kind enumerates aggregation variants.
type Kind int

const (
	// KindTerms buckets documents by distinct field values.
	KindTerms Kind = iota
	// KindRange buckets documents into named numeric ranges.
	KindRange
	// KindNestedTerms buckets nested sub-documents by value, counting parents.
	KindNestedTerms
)

// Range is a named numeric interval. A nil bound is unbounded.
type Range struct {
	Key  string
	From *float64
	To   *float64
}

// LowerBound returns From, or -Inf for an unbounded lower end.
func (r Range) LowerBound() float64 {
	if r.From == nil {
		return math.Inf(-1)
	}
	return *r.From
}

// Spec declares one facet aggregation.
//
// Name is the aggregation name in the engine request; Facet is the key the
// decoded buckets are reported under.
type Spec struct {
	Kind  Kind
	Name  string
	Facet string
	Field string

	// Terms and NestedTerms.
	Order []Order
	Size  int // 0 means engine default

	// Range.
	Ranges []Range

	// NestedTerms.
	Path        string
	ReverseName string
}

// Terms declares a terms aggregation ordered by count desc, key asc.
func Terms(name, facet, field string) Spec {
	return Spec{
		Kind:  KindTerms,
		Name:  name,
		Facet: facet,
		Field: field,
		Order: []Order{ByCountDesc(), ByKeyAsc()},
	}
}

// RangeOf declares a keyed range aggregation.
func RangeOf(name, facet, field string, ranges ...Range) Spec {
	return Spec{
		Kind:   KindRange,
		Name:   name,
		Facet:  facet,
		Field:  field,
		Ranges: ranges,
	}
}

// NestedTerms declares a terms aggregation over nested documents at path whose
// buckets carry a reverse-nested count of parent documents, ordered by that count
// desc, key asc.
func NestedTerms(name, facet, path, field, reverseName string) Spec {
	return Spec{
		Kind:        KindNestedTerms,
		Name:        name,
		Facet:       facet,
		Field:       field,
		Path:        path,
		ReverseName: reverseName,
		Order:       []Order{BySubAggDesc(reverseName), ByKeyAsc()},
	}
}

// Validate checks that the aggregation is complete for its kind.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return errors.New("aggregation name is required")
	}
	if s.Facet == "" {
		return fmt.Errorf("aggregation %s: facet name is required", s.Name)
	}
	if s.Field == "" {
		return fmt.Errorf("aggregation %s: field is required", s.Name)
	}
	switch s.Kind {
	case KindTerms:
	case KindRange:
		if len(s.Ranges) == 0 {
			return fmt.Errorf("aggregation %s: at least one range is required", s.Name)
		}
		for _, r := range s.Ranges {
			if r.Key == "" {
				return fmt.Errorf("aggregation %s: range key is required", s.Name)
			}
		}
	case KindNestedTerms:
		if s.Path == "" || s.ReverseName == "" {
			return fmt.Errorf("aggregation %s: nested path and reverse name are required", s.Name)
		}
	default:
		return fmt.Errorf("aggregation %s: unknown kind %d", s.Name, s.Kind)
	}
	return nil
}

// Bound returns a pointer to v, for Range literals.
func Bound(v float64) *float64 { return &v }

// PriceRanges are the Cheap / Average / Expensive price buckets.
func PriceRanges() []Range {
	return []Range{
		{Key: "Cheap", From: Bound(0), To: Bound(99.99)},
		{Key: "Average", From: Bound(100), To: Bound(499.99)},
		{Key: "Expensive", From: Bound(500)},
	}
}
