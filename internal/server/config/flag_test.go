package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-t", "pgx", "-d", "postgres://db", "-b", "12",
				"-s", "7", "-m", "release", "-l", "warn",
			},
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:9090",
				DatabaseDriver:   "pgx",
				DatabaseDSN:      "postgres://db",
				BcryptCost:       12,
				ShutdownTimeout:  7 * time.Second,
				GinMode:          "release",
				LogLevel:         "warn",
			},
		},
		{
			name: "foreign flags are ignored",
			args: []string{"-c", "cfg.json", "-x", "1", "-a", ":1"},
			expected: &Config{
				EndpointAddrHTTP: ":1",
			},
		},
		{
			name:        "non-numeric cost panics",
			args:        []string{"-b", "many"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_KeepsValuesWhenAbsent(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	parseFlags(c, nil)

	assert.Equal(t, ":5000", c.EndpointAddrHTTP)
	assert.Equal(t, 5*time.Second, c.ShutdownTimeout)
	assert.Equal(t, 10, c.BcryptCost)
}
