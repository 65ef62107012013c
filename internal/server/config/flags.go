package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/userauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-t string   database driver: pgx, sqlite or memory
//	-d string   database DSN
//	-b int      bcrypt cost
//	-s int      shutdown timeout, seconds
//	-m string   gin mode
//	-l string   log level
//
// args are filtered with flagx.FilterArgs first so that -c/-config and
// flags owned by other components do not cause parse errors.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-b", "-s", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "t", config.DatabaseDriver, "database driver (pgx, sqlite, memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	shutdownTimeout := fs.Int("s", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")
	fs.StringVar(&config.GinMode, "m", config.GinMode, "gin mode")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
