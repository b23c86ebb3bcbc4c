package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devaliuz/Epic-Charaktersheet/internal/config"
	"github.com/devaliuz/Epic-Charaktersheet/internal/database"
)

// openPool loads the application config and connects with it, so devtool
// always talks to the same database as the server.
func openPool(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	PrintInfo("Connecting to %s:%s/%s as %s", cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser)
	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return cfg, pool, nil
}
