package main

import (
	"context"

	"github.com/devaliuz/Epic-Charaktersheet/internal/auth"
	"github.com/devaliuz/Epic-Charaktersheet/internal/database/postgres"
)

type SeedAdminCommand struct{}

func (c *SeedAdminCommand) Name() string {
	return "seed-admin"
}

func (c *SeedAdminCommand) Description() string {
	return "Create the bootstrap admin account if no users exist"
}

func (c *SeedAdminCommand) Run(args []string) error {
	ctx := context.Background()
	cfg, pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := auth.NewService(postgres.NewUserRepository(pool), nil, auth.Options{Secret: []byte(cfg.SessionSecret)})
	created, err := svc.EnsureDefaultAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword)
	if err != nil {
		return err
	}
	if !created {
		PrintInfo("Users already exist, nothing to do")
		return nil
	}
	PrintSuccess("Created admin %q", cfg.BootstrapAdminUsername)
	for _, w := range cfg.ValidateEnvWithWarnings() {
		PrintWarning("%s", w)
	}
	return nil
}
