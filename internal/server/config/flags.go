package config

import (
	"flag"
	"os"
	"strings"

	"github.com/mlukins/accountd/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-b int      bcrypt cost for password hashing
//	-l string   comma-separated supported locale codes (e.g., "en,fr")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")

	locales := fs.String("l", strings.Join(config.SupportedLocales, ","), "supported locales (comma-separated)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *locales != "" {
		config.SupportedLocales = strings.Split(*locales, ",")
	}
}
