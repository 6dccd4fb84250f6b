package prodsearch

import (
	"errors"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrAnalyzerFailure      = domain.ErrAnalyzerFailure
	ErrSearchExecution      = domain.ErrSearchExecution
	ErrIndexNotAcknowledged = domain.ErrIndexNotAcknowledged
)

// ErrEngineUnavailable is recorded when a health check cannot reach the engine.
var ErrEngineUnavailable = errors.New("prodsearch: search engine unavailable")
