package tokencache

import (
	"context"
	"fmt"
)

type prefixDeleter interface {
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// Purger drops the cached analyzer output of one index alias. Run it after
// the alias moves, since the new index may define different analyzers.
type Purger struct {
	store prefixDeleter
	index string
}

// NewPurger creates a purger for the alias.
func NewPurger(s prefixDeleter, index string) *Purger {
	return &Purger{store: s, index: index}
}

// Invalidate deletes the alias's entries and returns how many were removed.
func (p *Purger) Invalidate(ctx context.Context) (int, error) {
	n, err := p.store.DeleteByPrefix(ctx, KeyPrefix(p.index))
	if err != nil {
		return n, fmt.Errorf("purge cached terms for %s: %w", p.index, err)
	}
	return n, nil
}
