package db

import (
	"encoding/json"

	"github.com/kailas-cloud/prodsearch/internal/domain/aggregation"
	"github.com/kailas-cloud/prodsearch/internal/domain/query"
)

// SortField is one sort key of a search request.
type SortField struct {
	Field     string // "_score" sorts by relevance
	Ascending bool
}

// ByScoreDesc sorts by relevance, highest first.
func ByScoreDesc() SortField { return SortField{Field: "_score"} }

// SearchRequest is the input for a structured search.
type SearchRequest struct {
	Index        string
	Query        query.Clause
	Aggregations []aggregation.Spec
	From         int
	Size         int
	Sort         []SortField
}

// SearchResult is the output of a search operation.
// Aggregations holds the raw aggregation tree keyed by aggregation name.
type SearchResult struct {
	Total        int64
	Hits         []SearchHit
	Aggregations map[string]json.RawMessage
}

// SearchHit is a single document hit.
type SearchHit struct {
	ID     string
	Score  float64
	Source json.RawMessage
}
