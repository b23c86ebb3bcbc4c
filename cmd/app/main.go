package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devaliuz/Epic-Charaktersheet/internal/bootstrap"
	"github.com/devaliuz/Epic-Charaktersheet/internal/config"
	"github.com/devaliuz/Epic-Charaktersheet/internal/database"
	"github.com/devaliuz/Epic-Charaktersheet/internal/event"
	"github.com/devaliuz/Epic-Charaktersheet/internal/server"
	"github.com/devaliuz/Epic-Charaktersheet/internal/worker"

	_ "github.com/devaliuz/Epic-Charaktersheet/docs"
)

const shutdownTimeout = 15 * time.Second

// @title Epic Charaktersheet API
// @version 1.0
// @description Character sheets, play sessions and snapshots for tabletop campaigns.
// @BasePath /api/v1
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name charsheet_session
func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, dbPool); err != nil {
			dbPool.Close()
			return err
		}
	}

	bus := event.NewMemoryBus()
	if err := bootstrap.RegisterEventHandlers(bus); err != nil {
		dbPool.Close()
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	services := bootstrap.InitializeServices(cfg, repos.Set(), bus)

	if err := bootstrap.EnsureBootstrapAdmin(ctx, cfg, services.Auth); err != nil {
		dbPool.Close()
		return err
	}

	sweeper := worker.NewSessionSweeper(services.Auth, cfg.SessionSweepInterval)
	sweeper.Start()

	srv := server.NewServer(server.Options{
		Port:               cfg.Port,
		TrustedProxies:     cfg.TrustedProxies,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		CookieSecure:       cfg.CookieSecure,
	}, dbPool, services)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:         srv,
		SessionSweeper: sweeper,
		DBPool:         dbPool,
	})
	return err
}
