package prodsearch

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	urls     []string
	username string
	password string

	index       string
	defaultSize int
	sizes       []string
	colors      []string

	keep      int
	batchSize int

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithElastic sets the Elasticsearch node URLs.
func WithElastic(urls ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.urls = urls
	})
}

// WithBasicAuth sets HTTP basic auth credentials for the cluster.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithIndex sets the index alias to search and reindex. Default: "products".
func WithIndex(alias string) Option {
	return optionFunc(func(c *clientConfig) {
		c.index = alias
	})
}

// WithDefaultPageSize sets the page size used when a request has none.
// Default: 10.
func WithDefaultPageSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultSize = size
	})
}

// WithVocabulary replaces the query terms recognized as sizes and colors.
func WithVocabulary(sizes, colors []string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sizes = sizes
		c.colors = colors
	})
}

// WithRetention sets how many dated indices Reindex keeps. Default: 3.
func WithRetention(keep int) Option {
	return optionFunc(func(c *clientConfig) {
		c.keep = keep
	})
}

// WithBatchSize sets the number of documents per bulk request. Default: 500.
func WithBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.batchSize = size
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
