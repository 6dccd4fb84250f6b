// Package tokencache caches analyzer output in a key-value store.
package tokencache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/prodsearch/internal/db"
	"github.com/kailas-cloud/prodsearch/internal/domain"
)

const cacheKeyPrefix = "prodsearch:analyze:"

// KeyPrefix returns the prefix shared by every cache key of one index alias.
func KeyPrefix(index string) string {
	return cacheKeyPrefix + index + ":"
}

// store is the consumer interface for the token cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedAnalyzer caches analyzer terms per (analyzer, index, text).
type CachedAnalyzer struct {
	inner      domain.Analyzer
	store      store
	index      string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
	group      singleflight.Group
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
// Index scopes cache keys so that reindexing under another alias does not reuse entries.
func New(
	inner domain.Analyzer,
	s store,
	index string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedAnalyzer {
	return &CachedAnalyzer{
		inner:      inner,
		store:      s,
		index:      index,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Analyze returns cached terms or calls the inner analyzer.
// Cache failures never fail the call.
func (c *CachedAnalyzer) Analyze(ctx context.Context, text, analyzer string) ([]string, error) {
	key := c.cacheKey(text, analyzer)

	if terms, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return terms, nil
	}

	c.incCache("miss")

	// Concurrent misses for the same key share one engine call. The shared
	// call ignores cancellation of whichever caller started it; each caller
	// stops waiting on its own ctx.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		terms, err := c.inner.Analyze(flightCtx, text, analyzer)
		if err != nil {
			return nil, err
		}
		c.putToCache(flightCtx, key, terms)
		return terms, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("analyze text: %w", res.Err)
		}
		return slices.Clone(res.Val.([]string)), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("analyze text: %w", ctx.Err())
	}
}

func (c *CachedAnalyzer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedAnalyzer) cacheKey(text, analyzer string) string {
	h := sha256.New()
	h.Write([]byte(analyzer))
	h.Write([]byte{0})
	h.Write([]byte(c.index))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return KeyPrefix(c.index) + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedAnalyzer) getFromCache(ctx context.Context, key string) ([]string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached terms", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var terms []string
	if err := json.Unmarshal(data, &terms); err != nil {
		c.logger.Warn("Failed to parse cached terms", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if terms == nil {
		terms = []string{}
	}
	return terms, true
}

func (c *CachedAnalyzer) putToCache(ctx context.Context, key string, terms []string) {
	if terms == nil {
		terms = []string{}
	}
	data, err := json.Marshal(terms)
	if err != nil {
		c.logger.Warn("Failed to encode terms", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache terms", zap.String("key", key), zap.Error(err))
	}
}
