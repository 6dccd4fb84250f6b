// Package index manages dated product indices behind an alias.
package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/prodsearch/internal/db"
	"github.com/kailas-cloud/prodsearch/internal/domain/document"
)

// DefaultBatchSize is the number of documents per bulk request.
const DefaultBatchSize = 500

// IDField is the catalog field holding each product's id.
const IDField = "id"

// store is the consumer interface for index administration (ISP).
type store interface {
	CreateIndex(ctx context.Context, name string, body []byte) error
	DeleteIndex(ctx context.Context, names ...string) error
	UpdateAliases(ctx context.Context, actions []db.AliasAction) error
	IndicesByAlias(ctx context.Context, alias string) ([]string, error)
	IndicesByPattern(ctx context.Context, pattern string) ([]string, error)
	Bulk(ctx context.Context, index string, items []db.BulkItem) (*db.BulkResult, error)
}

// Repo implements usecase/indexing.Repository.
type Repo struct {
	store     store
	idField   string
	batchSize int
}

// New creates an index repository. idField names the source field that
// becomes the engine document id.
func New(s store, idField string, batchSize int) *Repo {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Repo{store: s, idField: idField, batchSize: batchSize}
}

// Create creates an index with the given settings and mappings body.
func (r *Repo) Create(ctx context.Context, name string, body []byte) error {
	if err := r.store.CreateIndex(ctx, name, body); err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// Load bulk-creates documents in batches. The id field is removed from each
// document and its raw JSON literal becomes the engine id; documents without
// one get an engine-assigned id.
func (r *Repo) Load(ctx context.Context, index string, docs []*document.Document) (*db.BulkResult, error) {
	total := &db.BulkResult{}
	for start := 0; start < len(docs); start += r.batchSize {
		end := min(start+r.batchSize, len(docs))

		items := make([]db.BulkItem, 0, end-start)
		for _, doc := range docs[start:end] {
			item, err := r.toBulkItem(doc)
			if err != nil {
				return total, err
			}
			items = append(items, item)
		}

		res, err := r.store.Bulk(ctx, index, items)
		if err != nil {
			return total, fmt.Errorf("bulk load %s: %w", index, err)
		}
		total.Processed += res.Processed
		total.Failed = append(total.Failed, res.Failed...)
	}
	return total, nil
}

func (r *Repo) toBulkItem(doc *document.Document) (db.BulkItem, error) {
	var item db.BulkItem
	if v, ok := doc.Delete(r.idField); ok {
		raw, err := v.MarshalJSON()
		if err != nil {
			return item, fmt.Errorf("encode id: %w", err)
		}
		item.ID = string(raw)
	}

	src, err := doc.MarshalJSON()
	if err != nil {
		return item, fmt.Errorf("encode document %s: %w", item.ID, err)
	}
	item.Source = src
	return item, nil
}

// PointAlias moves alias to index in one atomic update, detaching it from
// every index it pointed to before. Returns the previous indices.
func (r *Repo) PointAlias(ctx context.Context, alias, index string) ([]string, error) {
	current, err := r.store.IndicesByAlias(ctx, alias)
	if err != nil {
		return nil, fmt.Errorf("list indices of alias %s: %w", alias, err)
	}

	actions := make([]db.AliasAction, 0, len(current)+1)
	previous := make([]string, 0, len(current))
	for _, name := range current {
		if name == index {
			continue
		}
		actions = append(actions, db.AliasAction{Type: db.AliasRemove, Alias: alias, Index: name})
		previous = append(previous, name)
	}
	actions = append(actions, db.AliasAction{Type: db.AliasAdd, Alias: alias, Index: index})

	if err := r.store.UpdateAliases(ctx, actions); err != nil {
		return nil, fmt.Errorf("point alias %s to %s: %w", alias, index, err)
	}
	return previous, nil
}

// Prune deletes all but the newest keep indices named <alias>_*.
// Index names sort chronologically by their timestamp suffix.
// Deletion continues past individual failures; the joined error is returned.
func (r *Repo) Prune(ctx context.Context, alias string, keep int) ([]string, error) {
	names, err := r.store.IndicesByPattern(ctx, alias+"_*")
	if err != nil {
		return nil, fmt.Errorf("list indices of %s: %w", alias, err)
	}
	if keep < 1 || len(names) <= keep {
		return nil, nil
	}

	var (
		deleted []string
		errs    []error
	)
	for _, name := range names[:len(names)-keep] {
		if err := r.store.DeleteIndex(ctx, name); err != nil {
			errs = append(errs, fmt.Errorf("delete index %s: %w", name, err))
			continue
		}
		deleted = append(deleted, name)
	}
	return deleted, errors.Join(errs...)
}
