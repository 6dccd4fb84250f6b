package search

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kailas-cloud/prodsearch/internal/db"
	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/aggregation"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	analyzeFn func(ctx context.Context, index, analyzer, text string) ([]string, error)
	searchFn  func(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error)
}

func (m *mockStore) Analyze(ctx context.Context, index, analyzer, text string) ([]string, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, index, analyzer, text)
	}
	return []string{}, nil
}

func (m *mockStore) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "products", domain.DefaultFields())
	return repo, ms
}

// testSpecs mirrors the four product facets.
func testSpecs() []aggregation.Spec {
	return []aggregation.Spec{
		aggregation.Terms("brand", "brand", "brand"),
		aggregation.RangeOf("priceAgg", "price", "price", aggregation.PriceRanges()...),
		aggregation.NestedTerms("variantSizeAgg", "variant.size", "variants", "variants.size", "reverse_size"),
		aggregation.NestedTerms("variantColorAgg", "variant.color", "variants", "variants.color", "reverse_color"),
	}
}

// jeansAggregations is the aggregation tree for the "jeans" query over the fixture catalog.
const jeansAggregations = `{
  "brand": {
    "doc_count_error_upper_bound": 0,
    "sum_other_doc_count": 0,
    "buckets": [
      {"key": "Levi's", "doc_count": 4},
      {"key": "Calvin Klein", "doc_count": 4}
    ]
  },
  "priceAgg": {
    "buckets": {
      "Expensive": {"from": 500.0, "doc_count": 0},
      "Average": {"from": 100.0, "to": 499.99, "doc_count": 6},
      "Cheap": {"from": 0.0, "to": 99.99, "doc_count": 2}
    }
  },
  "variantSizeAgg": {
    "doc_count": 34,
    "variants.size": {
      "buckets": [
        {"key": "M", "doc_count": 9, "reverse_size": {"doc_count": 8}},
        {"key": "XS", "doc_count": 2, "reverse_size": {"doc_count": 2}},
        {"key": "L", "doc_count": 8, "reverse_size": {"doc_count": 8}},
        {"key": "S", "doc_count": 7, "reverse_size": {"doc_count": 6}}
      ]
    }
  },
  "variantColorAgg": {
    "doc_count": 34,
    "variants.color": {
      "buckets": [
        {"key": "blue", "doc_count": 12, "reverse_color": {"doc_count": 5}},
        {"key": "black", "doc_count": 10, "reverse_color": {"doc_count": 5}},
        {"key": "white", "doc_count": 3, "reverse_color": {"doc_count": 3}}
      ]
    }
  }
}`

func rawAggregations(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return m
}
