package search

import (
	"context"

	"github.com/kailas-cloud/prodsearch/internal/domain/aggregation"
	"github.com/kailas-cloud/prodsearch/internal/domain/query"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/event"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/result"
)

// Repository executes compiled queries against the product index.
type Repository interface {
	Execute(
		ctx context.Context, q query.Clause, aggs []aggregation.Spec, from, size int,
	) (*result.Page, error)
}

// Analyzer tokenizes text with a named engine analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, text, analyzer string) ([]string, error)
}

// Tracker receives analytics events. Implementations must not block.
type Tracker interface {
	Track(e event.Search)
}
