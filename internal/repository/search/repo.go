package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/prodsearch/internal/db"
	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/aggregation"
	"github.com/kailas-cloud/prodsearch/internal/domain/query"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/result"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Analyze(ctx context.Context, index, analyzer, text string) ([]string, error)
	Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository and domain.Analyzer over one index alias.
type Repo struct {
	store  store
	index  string
	fields domain.Fields
}

// New creates a search repository for the index (or alias).
func New(s store, index string, fields domain.Fields) *Repo {
	return &Repo{store: s, index: index, fields: fields}
}

// Index returns the index or alias the repository reads from.
func (r *Repo) Index() string { return r.index }

// Analyze returns the terms the named analyzer produces for text.
func (r *Repo) Analyze(ctx context.Context, text, analyzer string) ([]string, error) {
	terms, err := r.store.Analyze(ctx, r.index, analyzer, text)
	if err != nil {
		return nil, domain.NewAnalyzerError(analyzer, err)
	}
	return terms, nil
}

// Execute runs the query with the facet aggregations and returns one page of hits.
// Hits are ordered by score desc, then document id desc.
// Facets are decoded only when the page has hits.
func (r *Repo) Execute(
	ctx context.Context, q query.Clause, aggs []aggregation.Spec, from, size int,
) (*result.Page, error) {
	req := &db.SearchRequest{
		Index:        r.index,
		Query:        q,
		Aggregations: aggs,
		From:         from,
		Size:         size,
		Sort:         []db.SortField{db.ByScoreDesc(), {Field: r.fields.ID}},
	}

	sr, err := r.store.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchExecution, err)
	}

	hits, err := decodeHits(sr.Hits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchExecution, err)
	}

	page := &result.Page{Total: sr.Total, Hits: hits}
	if len(hits) == 0 {
		return page, nil
	}

	facets, err := DecodeFacets(sr.Aggregations, aggs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchExecution, err)
	}
	page.Facets = facets
	return page, nil
}
