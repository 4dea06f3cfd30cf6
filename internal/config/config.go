package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port           string
	DatabaseURL    string
	ServiceRoleKey string

	// Optional read-side credentials for the dashboard. When unset the
	// dashboard shares the privileged pool.
	DashboardDatabaseURL string
	AnonKey              string
}

// Load reads configuration from the environment once at startup. The two
// store credentials are required; missing either is a startup failure, not
// a per-request one.
func Load() (Config, error) {
	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		ServiceRoleKey:       os.Getenv("SERVICE_ROLE_KEY"),
		DashboardDatabaseURL: os.Getenv("DASHBOARD_DATABASE_URL"),
		AnonKey:              os.Getenv("ANON_KEY"),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.ServiceRoleKey == "" {
		missing = append(missing, "SERVICE_ROLE_KEY")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
