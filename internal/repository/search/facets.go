package search

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/olivere/elastic/v7"

	"github.com/kailas-cloud/prodsearch/internal/domain/aggregation"
	"github.com/kailas-cloud/prodsearch/internal/domain/facet"
)

// DecodeFacets decodes the raw aggregation tree into ordered buckets keyed by facet name.
// Each spec must have a matching aggregation in raw.
//
// Orders applied:
//   - terms: count desc, key asc
//   - range: lower bound asc, unbounded lower end first
//   - nested terms: reverse-nested parent count desc, key asc
func DecodeFacets(raw map[string]json.RawMessage, specs []aggregation.Spec) (facet.Set, error) {
	aggs := elastic.Aggregations(raw)
	set := make(facet.Set, len(specs))

	for i := range specs {
		s := &specs[i]

		var (
			buckets []facet.Bucket
			err     error
		)
		switch s.Kind {
		case aggregation.KindTerms:
			buckets, err = decodeTerms(aggs, s)
		case aggregation.KindRange:
			buckets, err = decodeRange(aggs, s)
		case aggregation.KindNestedTerms:
			buckets, err = decodeNestedTerms(aggs, s)
		default:
			err = fmt.Errorf("aggregation %s: unknown kind %d", s.Name, s.Kind)
		}
		if err != nil {
			return nil, err
		}
		set[s.Facet] = buckets
	}
	return set, nil
}

func decodeTerms(aggs elastic.Aggregations, s *aggregation.Spec) ([]facet.Bucket, error) {
	items, ok := aggs.Terms(s.Name)
	if !ok {
		return nil, fmt.Errorf("aggregation %s: terms result missing", s.Name)
	}

	out := make([]facet.Bucket, 0, len(items.Buckets))
	for _, b := range items.Buckets {
		out = append(out, facet.Bucket{Value: bucketKey(b), Count: b.DocCount})
	}
	facet.SortByCount(out)
	return out, nil
}

func decodeRange(aggs elastic.Aggregations, s *aggregation.Spec) ([]facet.Bucket, error) {
	items, ok := aggs.KeyedRange(s.Name)
	if !ok {
		return nil, fmt.Errorf("aggregation %s: range result missing", s.Name)
	}

	// Keyed buckets arrive as a JSON object; fix the order before the stable sort.
	keys := make([]string, 0, len(items.Buckets))
	for k := range items.Buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ranged := make([]facet.Ranged, 0, len(keys))
	for _, k := range keys {
		b := items.Buckets[k]
		if b == nil {
			continue
		}
		lower := math.Inf(-1)
		if b.From != nil {
			lower = *b.From
		}
		ranged = append(ranged, facet.Ranged{
			Bucket: facet.Bucket{Value: k, Count: b.DocCount},
			Lower:  lower,
		})
	}
	return facet.SortByLowerBound(ranged), nil
}

func decodeNestedTerms(aggs elastic.Aggregations, s *aggregation.Spec) ([]facet.Bucket, error) {
	nested, ok := aggs.Nested(s.Name)
	if !ok {
		return nil, fmt.Errorf("aggregation %s: nested result missing", s.Name)
	}
	items, ok := nested.Terms(s.Field)
	if !ok {
		return nil, fmt.Errorf("aggregation %s: terms result %s missing", s.Name, s.Field)
	}

	out := make([]facet.Bucket, 0, len(items.Buckets))
	for _, b := range items.Buckets {
		rn, ok := b.ReverseNested(s.ReverseName)
		if !ok {
			return nil, fmt.Errorf("aggregation %s: reverse nested count %s missing", s.Name, s.ReverseName)
		}
		out = append(out, facet.Bucket{Value: bucketKey(b), Count: rn.DocCount})
	}
	facet.SortByCount(out)
	return out, nil
}

// bucketKey returns the literal bucket key.
func bucketKey(b *elastic.AggregationBucketKeyItem) string {
	if b.KeyAsString != nil {
		return *b.KeyAsString
	}
	switch k := b.Key.(type) {
	case string:
		return k
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	case json.Number:
		return k.String()
	default:
		return fmt.Sprint(k)
	}
}
