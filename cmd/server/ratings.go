package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Clark-Hu/filmgraph/db"
	"github.com/Clark-Hu/filmgraph/internal/config"
	"github.com/Clark-Hu/filmgraph/internal/store"
)

// openRatingsStore connects the ratings pool and applies pending migrations.
func openRatingsStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*store.Store, error) {
	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := store.New(dbCtx, cfg.DBURL, store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	})
	if err != nil {
		return nil, err
	}

	migrations, err := db.UpMigrations()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	if err := st.Migrate(dbCtx, migrations); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}
