package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAnalyzerFailure signals that a text analysis call to the search engine failed.
	ErrAnalyzerFailure = errors.New("analyzer failure")
	// ErrSearchExecution signals that the search engine could not execute a query.
	ErrSearchExecution = errors.New("search execution failure")
	// ErrMalformedRequest signals a request field that could not be interpreted.
	ErrMalformedRequest = errors.New("malformed request")
	// ErrIndexNotAcknowledged signals that the engine did not acknowledge an index operation.
	ErrIndexNotAcknowledged = errors.New("index operation not acknowledged")
)

// AnalyzerError wraps ErrAnalyzerFailure with the analyzer that failed.
type AnalyzerError struct {
	Analyzer string
	Err      error
}

func (e *AnalyzerError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrAnalyzerFailure.Error(), e.Analyzer, e.Err)
}

func (e *AnalyzerError) Unwrap() []error { return []error{ErrAnalyzerFailure, e.Err} }

// NewAnalyzerError creates an analyzer failure for the named analyzer.
func NewAnalyzerError(analyzer string, err error) error {
	return &AnalyzerError{Analyzer: analyzer, Err: err}
}
