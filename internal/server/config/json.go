package config

import (
	"encoding/json"
	"os"

	"github.com/pkolesov/launchbook/internal/flagx"
	"github.com/pkolesov/launchbook/internal/timex"
)

// jsonConfig is the DTO for JSON unmarshalling. timex.Duration lets the
// file spell durations either as "24h" or as integer nanoseconds.
type jsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	RedisAddr             string         `json:"redis_addr"`
	LoginMaxAttempts      int            `json:"login_max_attempts"`
	LoginAttemptWindow    timex.Duration `json:"login_attempt_window"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// No file named means no overlay. Read or unmarshal errors panic; the
// process cannot run on a config it cannot read.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	if jc.RedisAddr != "" {
		cfg.RedisAddr = jc.RedisAddr
	}
	if jc.LoginMaxAttempts != 0 {
		cfg.LoginMaxAttempts = jc.LoginMaxAttempts
	}
	if jc.LoginAttemptWindow.Duration != 0 {
		cfg.LoginAttemptWindow = jc.LoginAttemptWindow.Duration
	}
}
