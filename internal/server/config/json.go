package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userauth/internal/flagx"
	"github.com/dmitrijs2005/userauth/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations use
// timex.Duration so both "5s" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDriver   string         `json:"database_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	BcryptCost       int            `json:"bcrypt_cost"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	GinMode          string         `json:"gin_mode"`
	LogLevel         string         `json:"log_level"`
	ExcludedPaths    []string       `json:"excluded_paths"`

	CORSAllowedOrigins []string `json:"cors_allowed_origins"`
}

// parseJson loads the file named by -c/-config (if any) and copies every
// field present in it onto config. Absent fields keep their current value.
// An unreadable file or invalid JSON panics: a misconfigured server must not
// start.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDriver != "" {
		config.DatabaseDriver = c.DatabaseDriver
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.GinMode != "" {
		config.GinMode = c.GinMode
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.ExcludedPaths != nil {
		config.ExcludedPaths = c.ExcludedPaths
	}
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}
