package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnvWithWarnings(t *testing.T) {
	t.Run("defaults warn", func(t *testing.T) {
		cfg, err := loadClean(t, nil)
		require.NoError(t, err)

		warnings := cfg.ValidateEnvWithWarnings()
		assert.Len(t, warnings, 2)
		assert.Contains(t, warnings[0], "BOOTSTRAP_ADMIN_PASSWORD")
		assert.Contains(t, warnings[1], "SESSION_SECRET")
	})

	t.Run("hardened production is quiet", func(t *testing.T) {
		cfg := &Config{
			Environment:            EnvProduction,
			SessionSecret:          strings.Repeat("k", 64),
			BootstrapAdminPassword: "long-random-password",
			DBPassword:             "secret",
			CookieSecure:           true,
			CORSAllowedOrigins:     []string{"https://dnd.example.com"},
		}
		assert.Empty(t, cfg.ValidateEnvWithWarnings())
	})

	t.Run("insecure production", func(t *testing.T) {
		cfg := &Config{
			Environment:            EnvProduction,
			SessionSecret:          strings.Repeat("k", 64),
			BootstrapAdminPassword: "long-random-password",
		}
		warnings := cfg.ValidateEnvWithWarnings()
		assert.Len(t, warnings, 2)
	})
}
