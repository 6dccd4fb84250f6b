package elasticsearch

import (
	"context"
	"fmt"
	"sort"

	"github.com/olivere/elastic/v7"

	"github.com/kailas-cloud/prodsearch/internal/db"
)

// CreateIndex creates an index from a settings+mappings body.
func (s *Store) CreateIndex(ctx context.Context, name string, body []byte) error {
	svc := s.client.CreateIndex(name)
	if len(body) > 0 {
		svc = svc.BodyString(string(body))
	}
	res, err := svc.Do(ctx)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	if !res.Acknowledged {
		return &db.Error{Op: db.OpCreateIndex, Err: db.ErrNotAcked}
	}
	return nil
}

// DeleteIndex deletes indices by name.
func (s *Store) DeleteIndex(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	res, err := s.client.DeleteIndex(names...).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return &db.Error{Op: db.OpDeleteIndex, Err: db.ErrIndexNotFound}
		}
		return &db.Error{Op: db.OpDeleteIndex, Err: err}
	}
	if !res.Acknowledged {
		return &db.Error{Op: db.OpDeleteIndex, Err: db.ErrNotAcked}
	}
	return nil
}

// UpdateAliases applies all alias actions in one atomic request.
func (s *Store) UpdateAliases(ctx context.Context, actions []db.AliasAction) error {
	if len(actions) == 0 {
		return nil
	}

	svc := s.client.Alias()
	for _, a := range actions {
		switch a.Type {
		case db.AliasAdd:
			svc = svc.Action(elastic.NewAliasAddAction(a.Alias).Index(a.Index))
		case db.AliasRemove:
			svc = svc.Action(elastic.NewAliasRemoveAction(a.Alias).Index(a.Index))
		default:
			return &db.Error{Op: db.OpUpdateAliases, Err: fmt.Errorf("unknown alias action %d", a.Type)}
		}
	}

	res, err := svc.Do(ctx)
	if err != nil {
		return &db.Error{Op: db.OpUpdateAliases, Err: err}
	}
	if !res.Acknowledged {
		return &db.Error{Op: db.OpUpdateAliases, Err: db.ErrNotAcked}
	}
	return nil
}

// IndicesByAlias returns the sorted names of indices an alias points to.
// An unknown alias yields an empty list.
func (s *Store) IndicesByAlias(ctx context.Context, alias string) ([]string, error) {
	res, err := s.client.Aliases().Alias(alias).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, &db.Error{Op: db.OpGetAliases, Err: err}
	}
	names := res.IndicesByAlias(alias)
	sort.Strings(names)
	return names, nil
}

// IndicesByPattern returns the sorted names of indices matching a wildcard pattern.
func (s *Store) IndicesByPattern(ctx context.Context, pattern string) ([]string, error) {
	res, err := s.client.IndexGet(pattern).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, &db.Error{Op: db.OpGetIndices, Err: err}
	}
	names := make([]string, 0, len(res))
	for name := range res {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Bulk creates documents in an index. Items that already exist or are
// rejected are reported in BulkResult.Failed; the request itself only
// errors on transport failure.
func (s *Store) Bulk(ctx context.Context, index string, items []db.BulkItem) (*db.BulkResult, error) {
	if len(items) == 0 {
		return &db.BulkResult{}, nil
	}

	svc := s.client.Bulk().Index(index)
	for _, it := range items {
		svc = svc.Add(elastic.NewBulkIndexRequest().
			Index(index).
			Id(it.ID).
			OpType("create").
			Doc(it.Source))
	}

	res, err := svc.Do(ctx)
	if err != nil {
		return nil, &db.Error{Op: db.OpBulk, Err: err}
	}

	out := &db.BulkResult{Processed: len(res.Items)}
	for _, f := range res.Failed() {
		reason := fmt.Sprintf("status %d", f.Status)
		if f.Error != nil {
			reason = f.Error.Type + ": " + f.Error.Reason
		}
		out.Failed = append(out.Failed, db.BulkFailure{ID: f.Id, Reason: reason})
	}
	return out, nil
}
