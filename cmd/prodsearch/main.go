package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/config"
	dbElastic "github.com/kailas-cloud/prodsearch/internal/db/elasticsearch"
	dbRedis "github.com/kailas-cloud/prodsearch/internal/db/redis"
	"github.com/kailas-cloud/prodsearch/internal/domain"
	logpkg "github.com/kailas-cloud/prodsearch/internal/logger"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
	searchrepo "github.com/kailas-cloud/prodsearch/internal/repository/search"
	"github.com/kailas-cloud/prodsearch/internal/repository/tokencache"
	chiTransport "github.com/kailas-cloud/prodsearch/internal/transport/chi"
	kafkaTransport "github.com/kailas-cloud/prodsearch/internal/transport/kafka"
	analyticsuc "github.com/kailas-cloud/prodsearch/internal/usecase/analytics"
	analysisuc "github.com/kailas-cloud/prodsearch/internal/usecase/analysis"
	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/prodsearch/internal/usecase/search"
	"github.com/kailas-cloud/prodsearch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, "prodsearch-api", cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting prodsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("elastic_urls", cfg.Elastic.URLs),
		zap.String("index", cfg.Elastic.Index),
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

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err = engine.WaitForReady(ctx, time.Duration(cfg.Elastic.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search engine not ready", zap.Error(err))
	}
	logger.Info("Connected to search engine")

	metrics.RegisterSearchMetrics()

	vocab, err := cfg.Search.Vocabulary.Build()
	if err != nil {
		logger.Fatal("Invalid vocabulary", zap.Error(err))
	}

	searchRepo := searchrepo.New(engine, cfg.Elastic.Index, cfg.Search.Fields.Domain())

	// Analyzer chain: engine -> cached -> instrumented
	var analyzer domain.Analyzer = searchRepo
	var cachePinger healthuc.Pinger
	if cfg.Cache.Enabled {
		cache, cerr := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if cerr != nil {
			logger.Fatal("Failed to create cache client", zap.Error(cerr))
		}
		defer cache.Close()
		analyzer = tokencache.New(
			analyzer, cache, cfg.Elastic.Index, cfg.Cache.TTL(), metrics.AnalyzerCacheTotal, logger,
		)
		cachePinger = cache
		logger.Info("Analyzer token cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}
	analyzer = analysisuc.NewInstrumentedAnalyzer(analyzer, logger)

	compiler := searchuc.NewCompiler(
		analyzer, vocab,
		cfg.Search.Fields.Domain(), cfg.Search.Facets.Domain(), cfg.Search.Analyzers.Domain(),
	)

	// Pass nil interface (not typed nil pointer) when analytics is disabled.
	var tracker searchuc.Tracker
	if cfg.Analytics.Enabled {
		producer, perr := kafkaTransport.NewProducer(kafkaTransport.Config{
			Brokers: cfg.Analytics.Brokers,
			Topic:   cfg.Analytics.Topic,
		}, logger)
		if perr != nil {
			logger.Fatal("Failed to create analytics producer", zap.Error(perr))
		}
		collector := analyticsuc.NewCollector(producer, cfg.Analytics.BufferSize, logger)
		collector.Start(ctx)
		defer func() {
			collector.Close()
			if cerr := producer.Close(); cerr != nil {
				logger.Error("Failed to close analytics producer", zap.Error(cerr))
			}
		}()
		tracker = collector
	}

	searchSvc := searchuc.New(compiler, searchRepo, tracker)
	healthSvc := healthuc.New(engine, cachePinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, cfg.Search.DefaultPageSize, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.RequestLogger(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
