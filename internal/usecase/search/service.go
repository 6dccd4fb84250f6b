package search

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain/search/event"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/request"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/result"
	"github.com/kailas-cloud/prodsearch/internal/logger"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
)

// Service runs product searches. Failures of external collaborators degrade
// the result and are logged; Search never returns an error.
type Service struct {
	compiler *Compiler
	repo     Repository
	tracker  Tracker
	now      func() time.Time
}

// New creates a search service. tracker may be nil.
func New(compiler *Compiler, repo Repository, tracker Tracker) *Service {
	return &Service{compiler: compiler, repo: repo, tracker: tracker, now: time.Now}
}

// Search compiles the query text, executes it for the requested page and
// assembles products with facets. A request without query text returns an
// empty result without touching the engine.
func (s *Service) Search(ctx context.Context, p request.Params) result.Result {
	if p.IsEmpty() {
		metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return result.Empty()
	}

	ctx, log := logger.WithFields(ctx, zap.String("query", p.QueryText()))
	start := s.now()
	outcome := metrics.OutcomeOK

	q, err := s.compiler.Compile(ctx, p.QueryText())
	if err != nil {
		outcome = metrics.OutcomeDegraded
		log.Warn("Query analysis failed, continuing with empty query", zap.Error(err))
	}

	execStart := s.now()
	page, err := s.repo.Execute(ctx, q, s.compiler.Aggregations(), p.From(), p.Size())
	execStatus := "ok"
	var res result.Result
	if err != nil {
		execStatus = "error"
		outcome = metrics.OutcomeFailed
		log.Error("Search execution failed",
			zap.Int("from", p.From()),
			zap.Int("size", p.Size()),
			zap.Error(err),
		)
		res = result.Failed()
	} else {
		res = Assemble(page)
	}
	metrics.SearchDuration.WithLabelValues(execStatus).Observe(s.now().Sub(execStart).Seconds())
	metrics.SearchRequestsTotal.WithLabelValues(outcome).Inc()

	log.Debug("Search completed",
		zap.String("outcome", outcome),
		zap.Int64("total_hits", res.TotalHits),
		zap.Int("returned", len(res.Products)),
	)

	if s.tracker != nil {
		s.tracker.Track(event.Search{
			ID:         uuid.NewString(),
			Query:      p.QueryText(),
			Page:       p.Page(),
			Size:       p.Size(),
			TotalHits:  res.TotalHits,
			Returned:   len(res.Products),
			Degraded:   outcome == metrics.OutcomeDegraded,
			Failed:     outcome == metrics.OutcomeFailed,
			DurationMs: s.now().Sub(start).Milliseconds(),
			At:         start.UTC(),
		})
	}
	return res
}
