package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_OverlaysNamedFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "conf.json")
	body := `{"server_endpoint_url":"http://json:8080/graphql","data_dir":"/data/lb","request_timeout":"3s"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	os.Args = []string{"cmd", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, "http://json:8080/graphql", cfg.ServerEndpointURL)
	assert.Equal(t, "/data/lb", cfg.DataDir)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestParseJSON_NoFileNamedKeepsDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, "http://127.0.0.1:8080/graphql", cfg.ServerEndpointURL)
}

func TestParseJSON_PartialFileOverlaysOnlyNamedFields(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data_dir":"/only/this"}`), 0o600))
	os.Args = []string{"cmd", "-config", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, "/only/this", cfg.DataDir)
	assert.Equal(t, "http://127.0.0.1:8080/graphql", cfg.ServerEndpointURL)
	assert.Equal(t, 12*time.Second, cfg.RequestTimeout)
}
