package config

import (
	"flag"
	"os"
	"time"

	"github.com/pkolesov/launchbook/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags:
//
//	-a string   bind address for the HTTP endpoint
//	-d string   PostgreSQL DSN
//	-k string   HMAC secret for session tokens
//	-t int      session token validity in minutes
//	-r string   Redis address for the login limiter
//
// os.Args is filtered to the flags owned here, so the config-file flags
// parsed elsewhere do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "bind address for the HTTP endpoint")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "HMAC secret for session tokens")
	tokenValidity := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "session token validity (in minutes)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address for the login limiter")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
