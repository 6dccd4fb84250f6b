package elasticsearch

import (
	"context"

	"github.com/kailas-cloud/prodsearch/internal/db"
)

// Analyze runs the named index analyzer over text and returns the token terms in order.
func (s *Store) Analyze(ctx context.Context, index, analyzer, text string) ([]string, error) {
	res, err := s.client.IndexAnalyze().
		Index(index).
		Analyzer(analyzer).
		Text(text).
		Do(ctx)
	if err != nil {
		return nil, &db.Error{Op: db.OpAnalyze, Err: err}
	}

	terms := make([]string, 0, len(res.Tokens))
	for _, t := range res.Tokens {
		terms = append(terms, t.Token)
	}
	return terms, nil
}
