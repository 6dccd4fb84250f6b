package elasticsearch

import (
	"fmt"

	"github.com/olivere/elastic/v7"

	"github.com/kailas-cloud/prodsearch/internal/db"
	"github.com/kailas-cloud/prodsearch/internal/domain/aggregation"
	"github.com/kailas-cloud/prodsearch/internal/domain/query"
)

// buildQuery translates a query tree into its olivere form.
func buildQuery(c query.Clause) (elastic.Query, error) {
	switch q := c.(type) {
	case nil:
		return elastic.NewMatchAllQuery(), nil
	case query.Match:
		m := elastic.NewMatchQuery(q.Field, q.Value)
		if q.Boost != 0 {
			m = m.Boost(q.Boost)
		}
		if q.Operator != "" {
			m = m.Operator(string(q.Operator))
		}
		return m, nil
	case query.MultiMatch:
		m := elastic.NewMultiMatchQuery(q.Value, q.Fields...)
		if q.Type != "" {
			m = m.Type(string(q.Type))
		}
		if q.Operator != "" {
			m = m.Operator(string(q.Operator))
		}
		if q.Boost != 0 {
			m = m.Boost(q.Boost)
		}
		return m, nil
	case query.Nested:
		inner, err := buildQuery(q.Inner)
		if err != nil {
			return nil, err
		}
		n := elastic.NewNestedQuery(q.Path, inner)
		if q.ScoreMode != "" {
			n = n.ScoreMode(string(q.ScoreMode))
		}
		return n, nil
	case query.Bool:
		return buildBool(&q)
	case *query.Bool:
		return buildBool(q)
	default:
		return nil, fmt.Errorf("unsupported clause %T", c)
	}
}

func buildBool(q *query.Bool) (elastic.Query, error) {
	b := elastic.NewBoolQuery()
	for _, c := range q.Must {
		sub, err := buildQuery(c)
		if err != nil {
			return nil, err
		}
		b = b.Must(sub)
	}
	for _, c := range q.Should {
		sub, err := buildQuery(c)
		if err != nil {
			return nil, err
		}
		b = b.Should(sub)
	}
	return b, nil
}

// buildAggregation translates a facet aggregation. Nested terms are wrapped
// in a nested aggregation whose single terms child is named after the field.
func buildAggregation(s *aggregation.Spec) (elastic.Aggregation, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.Kind {
	case aggregation.KindTerms:
		return buildTerms(s), nil
	case aggregation.KindRange:
		r := elastic.NewRangeAggregation().Field(s.Field).Keyed(true)
		for _, rg := range s.Ranges {
			var from, to any
			if rg.From != nil {
				from = *rg.From
			}
			if rg.To != nil {
				to = *rg.To
			}
			r = r.AddRangeWithKey(rg.Key, from, to)
		}
		return r, nil
	case aggregation.KindNestedTerms:
		terms := buildTerms(s).SubAggregation(s.ReverseName, elastic.NewReverseNestedAggregation())
		return elastic.NewNestedAggregation().Path(s.Path).SubAggregation(s.Field, terms), nil
	default:
		return nil, fmt.Errorf("unsupported aggregation kind %d", s.Kind)
	}
}

func buildTerms(s *aggregation.Spec) *elastic.TermsAggregation {
	t := elastic.NewTermsAggregation().Field(s.Field)
	if s.Size > 0 {
		t = t.Size(s.Size)
	}
	for _, o := range s.Order {
		switch o.By {
		case aggregation.OrderCount:
			t = t.OrderByCount(o.Ascending)
		case aggregation.OrderKeyValue:
			t = t.OrderByKey(o.Ascending)
		default:
			t = t.OrderByAggregation(string(o.By), o.Ascending)
		}
	}
	return t
}

func buildSorters(fields []db.SortField) []elastic.Sorter {
	sorters := make([]elastic.Sorter, 0, len(fields))
	for _, f := range fields {
		if f.Field == "_score" {
			sorters = append(sorters, elastic.NewScoreSort().Order(f.Ascending))
			continue
		}
		sorters = append(sorters, elastic.NewFieldSort(f.Field).Order(f.Ascending))
	}
	return sorters
}
