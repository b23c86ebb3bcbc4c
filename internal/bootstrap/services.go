package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/devaliuz/Epic-Charaktersheet/internal/auth"
	"github.com/devaliuz/Epic-Charaktersheet/internal/character"
	"github.com/devaliuz/Epic-Charaktersheet/internal/config"
	"github.com/devaliuz/Epic-Charaktersheet/internal/event"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
	"github.com/devaliuz/Epic-Charaktersheet/internal/server"
	"github.com/devaliuz/Epic-Charaktersheet/internal/session"
)

// RepositorySet is the storage the services are built on. *Repositories
// provides it for PostgreSQL.
type RepositorySet struct {
	Characters repository.Character
	Sessions   repository.Session
	Auth       repository.Auth
}

// Set returns the PostgreSQL repositories as a RepositorySet.
func (r *Repositories) Set() RepositorySet {
	return RepositorySet{Characters: r.Characters, Sessions: r.Sessions, Auth: r.Users}
}

// InitializeServices wires the application services.
func InitializeServices(cfg *config.Config, repos RepositorySet, bus event.Bus) server.Services {
	return server.Services{
		Characters: character.NewService(repos.Characters, bus),
		Sessions:   session.NewService(repos.Sessions, bus),
		Auth: auth.NewService(repos.Auth, bus, auth.Options{
			Secret:     []byte(cfg.SessionSecret),
			SessionTTL: cfg.SessionTTL,
			CacheTTL:   cfg.SessionCacheTTL,
			CacheSize:  cfg.SessionCacheSize,
		}),
	}
}

// EnsureBootstrapAdmin creates the configured admin account on an empty
// users table.
func EnsureBootstrapAdmin(ctx context.Context, cfg *config.Config, svc auth.Service) error {
	created, err := svc.EnsureDefaultAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedEnsureAdmin, err)
	}
	if created && cfg.BootstrapAdminPassword == config.DefaultBootstrapAdminPassword {
		slog.Warn(LogMsgDefaultAdminWarning, "username", cfg.BootstrapAdminUsername)
	}
	return nil
}
