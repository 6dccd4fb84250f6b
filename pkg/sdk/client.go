package prodsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/prodsearch/internal/db"
	dbElastic "github.com/kailas-cloud/prodsearch/internal/db/elasticsearch"
	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/request"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/result"
	"github.com/kailas-cloud/prodsearch/internal/domain/token"
	logpkg "github.com/kailas-cloud/prodsearch/internal/logger"
	"github.com/kailas-cloud/prodsearch/internal/repository/catalog"
	indexrepo "github.com/kailas-cloud/prodsearch/internal/repository/index"
	searchrepo "github.com/kailas-cloud/prodsearch/internal/repository/search"
	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/prodsearch/internal/usecase/indexing"
	searchuc "github.com/kailas-cloud/prodsearch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultIndex            = "products"
)

// Internal interfaces for substitution in tests.
type searchUseCase interface {
	Search(ctx context.Context, p request.Params) result.Result
}

type indexingUseCase interface {
	Recreate(ctx context.Context, now time.Time) (*indexinguc.Report, error)
}

// Client is the prodsearch entry point.
type Client struct {
	engine      db.Engine
	searchSvc   searchUseCase
	healthSvc   healthUseCase
	indexer     func(files CatalogFiles) indexingUseCase
	defaultSize int
	obs         *observer
	now         func() time.Time
}

// New creates a Client and connects to the cluster.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if len(cfg.urls) == 0 {
		return nil, errors.New("prodsearch: elasticsearch url required (use WithElastic)")
	}

	engine, err := dbElastic.NewStore(dbElastic.Config{
		URLs:     cfg.urls,
		Username: cfg.username,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("prodsearch: create elasticsearch store: %w", err)
	}

	if err := engine.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		engine.Close()
		return nil, fmt.Errorf("prodsearch: search engine not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		engine.Close()
		return nil, err
	}

	c, err := wireClient(engine, cfg, obs)
	if err != nil {
		engine.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(engine db.Engine, cfg *clientConfig, obs *observer) (*Client, error) {
	index := cfg.index
	if index == "" {
		index = defaultIndex
	}

	var vocab *token.Vocabulary
	if len(cfg.sizes) > 0 || len(cfg.colors) > 0 {
		sizes, colors := cfg.sizes, cfg.colors
		if len(sizes) == 0 {
			sizes = token.DefaultSizes()
		}
		if len(colors) == 0 {
			colors = token.DefaultColors()
		}
		v, err := token.NewVocabulary(sizes, colors)
		if err != nil {
			return nil, fmt.Errorf("prodsearch: vocabulary: %w", err)
		}
		vocab = v
	}

	fields := domain.DefaultFields()
	searchRepo := searchrepo.New(engine, index, fields)
	compiler := searchuc.NewCompiler(
		searchRepo, vocab, fields, domain.DefaultFacetNames(), domain.DefaultAnalyzers(),
	)

	idxRepo := indexrepo.New(engine, indexrepo.IDField, cfg.batchSize)
	indexer := func(files CatalogFiles) indexingUseCase {
		src := catalog.New(catalog.Files{
			Settings: files.Settings,
			Mappings: files.Mappings,
			Data:     files.Data,
		})
		return indexinguc.New(src, idxRepo, index, cfg.keep, obs.logger)
	}

	return &Client{
		engine:      engine,
		searchSvc:   searchuc.New(compiler, searchRepo, nil),
		healthSvc:   healthuc.New(engine, nil),
		indexer:     indexer,
		defaultSize: cfg.defaultSize,
		obs:         obs,
		now:         time.Now,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.engine != nil {
		c.engine.Close()
	}
}

// Ping checks cluster connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.engine.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs one page of a faceted product search. Analyzer and engine
// failures are absorbed: the result is degraded or empty, never an error.
func (c *Client) Search(ctx context.Context, req SearchRequest) SearchResult {
	start := time.Now()
	p := request.New(req.QueryText, req.Page, req.Size, c.defaultSize)

	res := c.searchSvc.Search(logpkg.ContextWithLogger(ctx, c.obs.logger), p)
	c.obs.observe("search", start, nil)

	return searchResultFromDomain(res)
}

// Reindex builds a new dated index from files, moves the alias to it and
// deletes indices beyond the retention count.
func (c *Client) Reindex(ctx context.Context, files CatalogFiles) (rep ReindexReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reindex", start, err) }()

	r, err := c.indexer(files).Recreate(ctx, c.now())
	if err != nil {
		return ReindexReport{}, fmt.Errorf("reindex: %w", err)
	}
	return reindexReportFromDomain(r), nil
}
