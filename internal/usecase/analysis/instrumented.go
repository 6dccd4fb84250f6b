// Package analysis decorates the engine analyzer with observability.
package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
)

// InstrumentedAnalyzer wraps an Analyzer with request metrics and logging.
type InstrumentedAnalyzer struct {
	inner  domain.Analyzer
	logger *zap.Logger
}

// NewInstrumentedAnalyzer wraps an analyzer with observability.
func NewInstrumentedAnalyzer(inner domain.Analyzer, logger *zap.Logger) *InstrumentedAnalyzer {
	return &InstrumentedAnalyzer{inner: inner, logger: logger}
}

// Analyze delegates to the inner analyzer and records the outcome.
// Errors are returned unchanged.
func (a *InstrumentedAnalyzer) Analyze(ctx context.Context, text, analyzer string) ([]string, error) {
	start := time.Now()

	terms, err := a.inner.Analyze(ctx, text, analyzer)

	duration := time.Since(start)
	metrics.AnalyzeRequestDuration.WithLabelValues(analyzer).Observe(duration.Seconds())

	if err != nil {
		metrics.AnalyzeRequestsTotal.WithLabelValues(analyzer, "error").Inc()
		a.logger.Error("Analyze request failed",
			zap.String("analyzer", analyzer),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.AnalyzeRequestsTotal.WithLabelValues(analyzer, "ok").Inc()
	a.logger.Debug("Analyze request completed",
		zap.String("analyzer", analyzer),
		zap.Duration("duration", duration),
		zap.Int("terms", len(terms)),
	)
	return terms, nil
}
