package domain

import "context"

// Analyzer is the shared text analysis contract between layers.
// It returns the terms the named engine analyzer produces for text, in order.
type Analyzer interface {
	Analyze(ctx context.Context, text, analyzer string) ([]string, error)
}

// HealthChecker verifies availability of an external collaborator.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
