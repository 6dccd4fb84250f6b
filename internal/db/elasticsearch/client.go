// Package elasticsearch implements the search engine facade over the
// Elasticsearch 7 REST API.
package elasticsearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/olivere/elastic/v7"

	"github.com/kailas-cloud/prodsearch/internal/db"
)

// Compile-time check: Store implements db.Engine.
var _ db.Engine = (*Store)(nil)

// Config holds connection parameters for an Elasticsearch cluster.
type Config struct {
	URLs       []string
	Username   string
	Password   string
	HTTPClient *http.Client
}

// Store implements db.Engine via olivere/elastic.
type Store struct {
	client *elastic.Client
}

// NewStore creates an Elasticsearch client. Sniffing, background health
// checks and retries are disabled: every call is a single attempt.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.URLs) == 0 {
		return nil, fmt.Errorf("urls is required")
	}

	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(cfg.URLs...),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
		elastic.SetRetrier(elastic.NewStopRetrier()),
	}
	if cfg.Username != "" {
		opts = append(opts, elastic.SetBasicAuth(cfg.Username, cfg.Password))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, elastic.SetHttpClient(cfg.HTTPClient))
	}

	client, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client}, nil
}

// Ping checks that the cluster answers and is not red.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.client.ClusterHealth().Do(ctx)
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	if res.Status == "red" {
		return &db.Error{Op: db.OpPing, Err: errors.New("cluster status is red")}
	}
	return nil
}

// Close stops the client.
func (s *Store) Close() {
	s.client.Stop()
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for search engine: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
