package db

import "errors"

// Sentinel errors for backend operations.
var (
	ErrKeyNotFound   = errors.New("db: key not found")
	ErrIndexNotFound = errors.New("db: index not found")
	ErrNotAcked      = errors.New("db: request not acknowledged")
)

// Op constants name backend operations for error context.
const (
	OpPing          = "CLUSTER.HEALTH"
	OpAnalyze       = "ANALYZE"
	OpSearch        = "SEARCH"
	OpCreateIndex   = "CREATE_INDEX"
	OpDeleteIndex   = "DELETE_INDEX"
	OpUpdateAliases = "UPDATE_ALIASES"
	OpGetAliases    = "GET_ALIASES"
	OpGetIndices    = "GET_INDICES"
	OpBulk          = "BULK"
	OpGet           = "GET"
	OpSet           = "SET"
	OpScan          = "SCAN"
	OpUnlink        = "UNLINK"
	OpRedisPing     = "PING"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
