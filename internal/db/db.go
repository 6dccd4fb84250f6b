package db

import (
	"context"
	"time"
)

// Engine is the search engine facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade; consumers use narrow sub-interfaces (ISP)
type Engine interface {
	Pinger
	Analyzer
	Searcher
	IndexAdmin
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Analyzer runs an index analyzer over text.
type Analyzer interface {
	Analyze(ctx context.Context, index, analyzer, text string) ([]string, error)
}

// Searcher executes structured queries with aggregations.
type Searcher interface {
	Search(ctx context.Context, req *SearchRequest) (*SearchResult, error)
}

// IndexAdmin provides index lifecycle operations.
type IndexAdmin interface {
	CreateIndex(ctx context.Context, name string, body []byte) error
	DeleteIndex(ctx context.Context, names ...string) error
	UpdateAliases(ctx context.Context, actions []AliasAction) error
	IndicesByAlias(ctx context.Context, alias string) ([]string, error)
	IndicesByPattern(ctx context.Context, pattern string) ([]string, error)
	Bulk(ctx context.Context, index string, items []BulkItem) (*BulkResult, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}
