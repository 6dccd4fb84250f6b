package indexing

import (
	"context"

	"github.com/kailas-cloud/prodsearch/internal/db"
	"github.com/kailas-cloud/prodsearch/internal/domain/document"
)

// Source provides the index definition and the documents to load.
type Source interface {
	IndexBody() ([]byte, error)
	Documents() ([]*document.Document, error)
}

// Repository manages physical indices behind an alias.
type Repository interface {
	Create(ctx context.Context, name string, body []byte) error
	Load(ctx context.Context, index string, docs []*document.Document) (*db.BulkResult, error)
	PointAlias(ctx context.Context, alias, index string) ([]string, error)
	Prune(ctx context.Context, alias string, keep int) ([]string, error)
}

// Invalidator drops state derived from the previous index, such as cached
// analyzer output, once the alias has moved.
type Invalidator interface {
	Invalidate(ctx context.Context) (int, error)
}
