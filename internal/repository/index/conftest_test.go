package index

import (
	"context"
	"testing"

	"github.com/kailas-cloud/prodsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createIndexFn      func(ctx context.Context, name string, body []byte) error
	deleteIndexFn      func(ctx context.Context, names ...string) error
	updateAliasesFn    func(ctx context.Context, actions []db.AliasAction) error
	indicesByAliasFn   func(ctx context.Context, alias string) ([]string, error)
	indicesByPatternFn func(ctx context.Context, pattern string) ([]string, error)
	bulkFn             func(ctx context.Context, index string, items []db.BulkItem) (*db.BulkResult, error)
}

func (m *mockStore) CreateIndex(ctx context.Context, name string, body []byte) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, name, body)
	}
	return nil
}

func (m *mockStore) DeleteIndex(ctx context.Context, names ...string) error {
	if m.deleteIndexFn != nil {
		return m.deleteIndexFn(ctx, names...)
	}
	return nil
}

func (m *mockStore) UpdateAliases(ctx context.Context, actions []db.AliasAction) error {
	if m.updateAliasesFn != nil {
		return m.updateAliasesFn(ctx, actions)
	}
	return nil
}

func (m *mockStore) IndicesByAlias(ctx context.Context, alias string) ([]string, error) {
	if m.indicesByAliasFn != nil {
		return m.indicesByAliasFn(ctx, alias)
	}
	return []string{}, nil
}

func (m *mockStore) IndicesByPattern(ctx context.Context, pattern string) ([]string, error) {
	if m.indicesByPatternFn != nil {
		return m.indicesByPatternFn(ctx, pattern)
	}
	return []string{}, nil
}

func (m *mockStore) Bulk(ctx context.Context, index string, items []db.BulkItem) (*db.BulkResult, error) {
	if m.bulkFn != nil {
		return m.bulkFn(ctx, index, items)
	}
	return &db.BulkResult{Processed: len(items)}, nil
}

func newTestRepo(t *testing.T, batchSize int) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "id", batchSize), ms
}
