package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names understood by parseEnv.
const (
	envAddr            = "USERAUTH_ADDR"
	envDBDriver        = "USERAUTH_DB_DRIVER"
	envDBDSN           = "USERAUTH_DB_DSN"
	envBcryptCost      = "USERAUTH_BCRYPT_COST"
	envShutdownTimeout = "USERAUTH_SHUTDOWN_TIMEOUT"
	envGinMode         = "GIN_MODE"
	envLogLevel        = "USERAUTH_LOG_LEVEL"
	envExcludedPaths   = "USERAUTH_EXCLUDED_PATHS"
	envCORSOrigins     = "USERAUTH_CORS_ORIGINS"
)

// parseEnv overlays Config with environment variables. If dotenvFile exists
// it is loaded first; variables already present in the process environment
// win over the file. Unset or malformed variables leave the field untouched.
func parseEnv(config *Config, dotenvFile string) {
	if dotenvFile != "" {
		_ = godotenv.Load(dotenvFile)
	}

	if v := os.Getenv(envAddr); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv(envDBDriver); v != "" {
		config.DatabaseDriver = v
	}
	if v := os.Getenv(envDBDSN); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv(envBcryptCost); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
	if v := os.Getenv(envShutdownTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.ShutdownTimeout = d
		}
	}
	if v := os.Getenv(envGinMode); v != "" {
		config.GinMode = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv(envExcludedPaths); v != "" {
		config.ExcludedPaths = splitList(v)
	}
	if v := os.Getenv(envCORSOrigins); v != "" {
		config.CORSAllowedOrigins = splitList(v)
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
