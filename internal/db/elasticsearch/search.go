package elasticsearch

import (
	"context"
	"encoding/json"

	"github.com/kailas-cloud/prodsearch/internal/db"
)

// Search executes a structured query with aggregations against an index or alias.
func (s *Store) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	q, err := buildQuery(req.Query)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	svc := s.client.Search(req.Index).
		Query(q).
		From(req.From).
		Size(req.Size).
		TrackTotalHits(true)

	for i := range req.Aggregations {
		spec := &req.Aggregations[i]
		agg, err := buildAggregation(spec)
		if err != nil {
			return nil, &db.Error{Op: db.OpSearch, Err: err}
		}
		svc = svc.Aggregation(spec.Name, agg)
	}
	if sorters := buildSorters(req.Sort); len(sorters) > 0 {
		svc = svc.SortBy(sorters...)
	}

	res, err := svc.Do(ctx)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	out := &db.SearchResult{
		Total:        res.TotalHits(),
		Aggregations: map[string]json.RawMessage(res.Aggregations),
	}
	if res.Hits != nil {
		out.Hits = make([]db.SearchHit, 0, len(res.Hits.Hits))
		for _, h := range res.Hits.Hits {
			var score float64
			if h.Score != nil {
				score = *h.Score
			}
			out.Hits = append(out.Hits, db.SearchHit{ID: h.Id, Score: score, Source: h.Source})
		}
	}
	return out, nil
}
