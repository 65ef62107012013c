// Package config handles configuration for the server component,
// including defaults, environment overlay, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// Supported values for Config.DatabaseDriver.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds runtime settings for the userauth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP adapter.
//   - DatabaseDriver: one of DriverPostgres, DriverSQLite, DriverMemory.
//   - DatabaseDSN: driver-specific data source name (file path for SQLite).
//   - BcryptCost: work factor for password hashing.
//   - ShutdownTimeout: grace period for in-flight requests on stop.
//   - GinMode: gin run mode (debug, release, test).
//   - LogLevel: minimum slog level (debug, info, warn, error).
//   - ExcludedPaths: paths reachable without a session; "*" globs allowed.
//   - CORSAllowedOrigins: browser origins allowed to call the API with
//     credentials; empty disables CORS handling.
type Config struct {
	EndpointAddrHTTP string
	DatabaseDriver   string
	DatabaseDSN      string
	BcryptCost       int
	ShutdownTimeout  time.Duration
	GinMode          string
	LogLevel         string
	ExcludedPaths    []string

	CORSAllowedOrigins []string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "data/userauth.db"
	c.BcryptCost = 10
	c.ShutdownTimeout = 5 * time.Second
	c.GinMode = "debug"
	c.LogLevel = "info"
	c.ExcludedPaths = []string{"/", "/users/", "/sessions/", "/reset_password/"}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (and an optional .env file), an optional JSON file
// and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
