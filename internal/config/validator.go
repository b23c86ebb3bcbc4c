package config

import "fmt"

// ValidateEnvWithWarnings returns warnings for settings that work but
// should not reach production.
func (c *Config) ValidateEnvWithWarnings() []string {
	var warnings []string

	if c.BootstrapAdminPassword == DefaultBootstrapAdminPassword {
		warnings = append(warnings, "BOOTSTRAP_ADMIN_PASSWORD is the default - change the admin password after the first login")
	}
	if c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.SessionSecret == ExampleSessionSecret || c.SessionSecret == devSessionSecret {
		warnings = append(warnings, "SESSION_SECRET appears to be a placeholder - generate one with: openssl rand -hex 32")
	} else if len(c.SessionSecret) < MinSessionSecretBytes {
		warnings = append(warnings, fmt.Sprintf("SESSION_SECRET is shorter than %d bytes", MinSessionSecretBytes))
	}
	if !c.CookieSecure && c.Environment == EnvProduction {
		warnings = append(warnings, "COOKIE_SECURE is off in production - session cookies will be sent over plain HTTP")
	}
	if len(c.CORSAllowedOrigins) == 0 && c.Environment == EnvProduction {
		warnings = append(warnings, "CORS_ALLOWED_ORIGINS is empty - any origin may call the API with credentials")
	}

	return warnings
}
