package config

import (
	"flag"
	"os"
	"time"

	"github.com/pkolesov/launchbook/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags:
//
//	-a string   URL of the backend /graphql endpoint
//	-d string   directory for the local credential store
//	-t int      request timeout in seconds
//
// os.Args is filtered to the flags owned here, so the config-file flags
// parsed elsewhere do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointURL, "a", cfg.ServerEndpointURL, "URL of the backend graphql endpoint")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "directory for the local credential store")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
