package toolfetch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// MustDownload is DownloadIfNeeded for test setup; failures fail the
// enclosing test.
func (c *Config) MustDownload(t *testing.T, url, dest, wantSHA256 string) {
	t.Helper()
	require.NoError(t, c.DownloadIfNeeded(context.Background(), url, dest, wantSHA256))
}

// MustRemoveDir is RemoveDir for test teardown.
func (c *Config) MustRemoveDir(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, c.RemoveDir(dir))
}
