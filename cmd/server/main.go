package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Clark-Hu/filmgraph/internal/catalog"
	"github.com/Clark-Hu/filmgraph/internal/config"
	httpserver "github.com/Clark-Hu/filmgraph/internal/http"
	"github.com/Clark-Hu/filmgraph/internal/logging"
	"github.com/Clark-Hu/filmgraph/internal/repository"
	"github.com/Clark-Hu/filmgraph/internal/sparql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, closeLog := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() { _ = closeLog() }()

	local, err := sparql.NewHTTPClient(cfg.LocalEndpoint(), sparql.Options{
		Timeout: time.Duration(cfg.SPARQLTimeoutSecs) * time.Second,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("init local sparql client", "error", err)
		os.Exit(1)
	}

	wikidata, err := sparql.NewHTTPClient(cfg.WikidataEndpoint, sparql.Options{
		Timeout:    time.Duration(cfg.WikidataTimeoutSecs) * time.Second,
		UserAgent:  cfg.WikidataUserAgent,
		RatePerSec: cfg.WikidataRatePerSec,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("init wikidata client", "error", err)
		os.Exit(1)
	}

	checks := map[string]httpserver.HealthCheck{"sparql": local.Ping}
	opts := httpserver.Options{Checks: checks, Logger: logger}
	var ratingSource catalog.RatingSource

	if cfg.RatingsEnabled() {
		st, err := openRatingsStore(ctx, cfg, logger)
		if err != nil {
			logger.Error("open ratings database", "error", err)
			os.Exit(1)
		}
		defer st.Close()

		repo := repository.New(st)
		opts.Ratings = repo.Ratings
		ratingSource = repo.Ratings
		checks["database"] = st.HealthCheck
	} else {
		logger.Info("DB_URL not set; community ratings disabled")
	}

	aggregator := catalog.NewAggregator(wikidata, ratingSource, logger)
	svc := catalog.NewService(local, aggregator, logger)
	server := httpserver.New(cfg, svc, opts)

	logger.Info("starting filmgraph",
		"port", cfg.Port,
		"sparql", local.Endpoint(),
		"wikidata", wikidata.Endpoint(),
		"ratings", cfg.RatingsEnabled())

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			logger.Error("server error", "error", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("graceful shutdown error", "error", err)
	}
}
