package search

import (
	"fmt"

	"github.com/kailas-cloud/prodsearch/internal/db"
	"github.com/kailas-cloud/prodsearch/internal/domain/document"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/result"
)

// decodeHits parses hit sources into documents. The engine id is kept verbatim.
func decodeHits(hits []db.SearchHit) ([]result.Hit, error) {
	out := make([]result.Hit, 0, len(hits))
	for _, h := range hits {
		doc := document.New()
		if len(h.Source) > 0 {
			var err error
			doc, err = document.Parse(h.Source)
			if err != nil {
				return nil, fmt.Errorf("decode hit %s: %w", h.ID, err)
			}
		}
		out = append(out, result.Hit{ID: h.ID, Score: h.Score, Source: doc})
	}
	return out, nil
}
