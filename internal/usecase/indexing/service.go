// Package indexing rebuilds the product index behind its alias.
package indexing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultKeep is the number of dated indices retained after a rebuild.
const DefaultKeep = 3

// nameLayout renders the creation timestamp in index names (yyyyMMddHHmmss).
const nameLayout = "20060102150405"

// Report summarizes one rebuild.
type Report struct {
	Index     string
	Processed int
	Failed    int
	Previous  []string // indices the alias pointed to before
	Deleted   []string // indices removed by retention

	Invalidated int // cache entries dropped after the alias moved
}

// Service recreates the dated index, loads the catalog and swaps the alias.
type Service struct {
	source Source
	repo   Repository
	alias  string
	keep   int
	inv    Invalidator
	logger *zap.Logger
}

// New creates an indexing service. keep <= 0 uses DefaultKeep.
func New(source Source, repo Repository, alias string, keep int, logger *zap.Logger) *Service {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Service{source: source, repo: repo, alias: alias, keep: keep, logger: logger}
}

// WithInvalidator returns a copy of the service that runs inv after every
// successful alias swap.
func (s *Service) WithInvalidator(inv Invalidator) *Service {
	cp := *s
	cp.inv = inv
	return &cp
}

// IndexName returns the dated physical index name for alias at t.
func IndexName(alias string, t time.Time) string {
	return alias + "_" + t.Format(nameLayout)
}

// Recreate builds a new index named after now and moves the alias to it.
// Failing to read the source or create the index is fatal; a failed alias
// swap or retention pass is logged and reported as far as it got.
func (s *Service) Recreate(ctx context.Context, now time.Time) (*Report, error) {
	body, err := s.source.IndexBody()
	if err != nil {
		return nil, fmt.Errorf("read index definition: %w", err)
	}
	docs, err := s.source.Documents()
	if err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}

	name := IndexName(s.alias, now)
	if err = s.repo.Create(ctx, name, body); err != nil {
		return nil, fmt.Errorf("create index %s: %w", name, err)
	}
	s.logger.Info("Index created", zap.String("index", name))

	rep := &Report{Index: name}

	res, err := s.repo.Load(ctx, name, docs)
	if err != nil {
		return nil, fmt.Errorf("load documents into %s: %w", name, err)
	}
	rep.Processed = res.Processed
	rep.Failed = len(res.Failed)
	for _, f := range res.Failed {
		s.logger.Warn("Document rejected",
			zap.String("index", name),
			zap.String("id", f.ID),
			zap.String("reason", f.Reason),
		)
	}
	s.logger.Info("Documents loaded",
		zap.String("index", name),
		zap.Int("processed", rep.Processed),
		zap.Int("failed", rep.Failed),
	)

	prev, err := s.repo.PointAlias(ctx, s.alias, name)
	if err != nil {
		s.logger.Error("Alias swap failed",
			zap.String("alias", s.alias),
			zap.String("index", name),
			zap.Error(err),
		)
		return rep, nil
	}
	rep.Previous = prev
	s.logger.Info("Alias moved",
		zap.String("alias", s.alias),
		zap.String("index", name),
		zap.Strings("previous", prev),
	)

	if s.inv != nil {
		n, ierr := s.inv.Invalidate(ctx)
		rep.Invalidated = n
		if ierr != nil {
			s.logger.Warn("Cache invalidation failed", zap.String("alias", s.alias), zap.Error(ierr))
		} else {
			s.logger.Info("Cache invalidated", zap.String("alias", s.alias), zap.Int("entries", n))
		}
	}

	deleted, err := s.repo.Prune(ctx, s.alias, s.keep)
	rep.Deleted = deleted
	if err != nil {
		s.logger.Error("Index retention failed",
			zap.String("alias", s.alias),
			zap.Int("keep", s.keep),
			zap.Error(err),
		)
		return rep, nil
	}
	if len(deleted) > 0 {
		s.logger.Info("Old indices deleted", zap.Strings("indices", deleted))
	}
	return rep, nil
}
