package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/config"
	dbElastic "github.com/kailas-cloud/prodsearch/internal/db/elasticsearch"
	dbRedis "github.com/kailas-cloud/prodsearch/internal/db/redis"
	logpkg "github.com/kailas-cloud/prodsearch/internal/logger"
	"github.com/kailas-cloud/prodsearch/internal/repository/catalog"
	indexrepo "github.com/kailas-cloud/prodsearch/internal/repository/index"
	"github.com/kailas-cloud/prodsearch/internal/repository/tokencache"
	indexinguc "github.com/kailas-cloud/prodsearch/internal/usecase/indexing"
	"github.com/kailas-cloud/prodsearch/internal/version"
)

func main() {
	var (
		dataFile    = flag.String("data", "", "product data file (overrides indexer.data_file)")
		keep        = flag.Int("keep", 0, "dated indices to retain (overrides indexer.keep)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if *dataFile != "" {
		cfg.Indexer.DataFile = *dataFile
	}
	if *keep > 0 {
		cfg.Indexer.Keep = *keep
	}

	logger, err := logpkg.NewLogger(env, "prodsearch-indexer", cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting prodsearch indexer",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("alias", cfg.Elastic.Index),
		zap.String("data_file", cfg.Indexer.DataFile),
		zap.Int("keep", cfg.Indexer.Keep),
	)

	engine, err := dbElastic.NewStore(dbElastic.Config{
		URLs:     cfg.Elastic.URLs,
		Username: cfg.Elastic.Username,
		Password: cfg.Elastic.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create search engine client", zap.Error(err))
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = engine.WaitForReady(ctx, time.Duration(cfg.Elastic.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search engine not ready", zap.Error(err))
	}

	source := catalog.New(catalog.Files{
		Settings: cfg.Indexer.SettingsFile,
		Mappings: cfg.Indexer.MappingsFile,
		Data:     cfg.Indexer.DataFile,
	})
	repo := indexrepo.New(engine, indexrepo.IDField, cfg.Indexer.BatchSize)
	svc := indexinguc.New(source, repo, cfg.Elastic.Index, cfg.Indexer.Keep, logger)

	if cfg.Cache.Enabled {
		cache, cerr := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if cerr != nil {
			logger.Fatal("Failed to create cache client", zap.Error(cerr))
		}
		defer cache.Close()
		svc = svc.WithInvalidator(tokencache.NewPurger(cache, cfg.Elastic.Index))
	}

	start := time.Now()
	rep, err := svc.Recreate(ctx, start)
	if err != nil {
		logger.Fatal("Index rebuild failed", zap.Error(err))
	}

	logger.Info("Index rebuild finished",
		zap.String("index", rep.Index),
		zap.Int("processed", rep.Processed),
		zap.Int("failed", rep.Failed),
		zap.Strings("previous", rep.Previous),
		zap.Strings("deleted", rep.Deleted),
		zap.Int("invalidated", rep.Invalidated),
		zap.Duration("took", time.Since(start)),
	)
}
