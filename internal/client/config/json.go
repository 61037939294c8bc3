package config

import (
	"encoding/json"
	"os"

	"github.com/pkolesov/launchbook/internal/flagx"
	"github.com/pkolesov/launchbook/internal/timex"
)

// jsonConfig is the DTO for JSON unmarshalling. timex.Duration lets the
// file spell the timeout either as "12s" or as integer nanoseconds.
type jsonConfig struct {
	ServerEndpointURL string         `json:"server_endpoint_url"`
	DataDir           string         `json:"data_dir"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
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

	if jc.ServerEndpointURL != "" {
		cfg.ServerEndpointURL = jc.ServerEndpointURL
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
