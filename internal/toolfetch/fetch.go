package toolfetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"
)

// Config controls downloading and cleanup behavior.
//
// IgnorableRemoveErrnos lists errnos RemoveDir treats as success; some
// filesystems report ENOTEMPTY or EBUSY from RemoveAll even though the
// directory is gone on re-check.
type Config struct {
	MaxAttempts           int
	RetryBase             time.Duration
	IgnorableRemoveErrnos []syscall.Errno
	HTTPClient            *http.Client
}

func DefaultConfig() *Config {
	return &Config{
		MaxAttempts:           3,
		RetryBase:             500 * time.Millisecond,
		IgnorableRemoveErrnos: []syscall.Errno{syscall.ENOTEMPTY, syscall.EBUSY},
		HTTPClient:            &http.Client{Timeout: 2 * time.Minute},
	}
}

// DownloadIfNeeded fetches url into dest unless a file with the wanted
// sha256 is already there. Transient HTTP failures are retried with
// exponential backoff; a checksum mismatch on the downloaded body is
// terminal.
func (c *Config) DownloadIfNeeded(ctx context.Context, url, dest, wantSHA256 string) error {

	if ok, err := checksumMatches(dest, wantSHA256); err != nil {
		return err
	} else if ok {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create tool dir: %w", err)
	}

	backoff := retry.WithMaxRetries(uint64(c.MaxAttempts-1), retry.NewExponential(c.RetryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, err := c.fetch(ctx, url)
		if err != nil {
			return retry.RetryableError(err)
		}

		sum := sha256.Sum256(body)
		if got := hex.EncodeToString(sum[:]); got != wantSHA256 {
			return fmt.Errorf("checksum mismatch for %s: got %s want %s", url, got, wantSHA256)
		}

		if err := os.WriteFile(dest, body, 0o755); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
		return nil
	})
}

func (c *Config) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func checksumMatches(path, wantSHA256 string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) == wantSHA256, nil
}

// RemoveDir deletes dir recursively, treating the configured errnos as
// success.
func (c *Config) RemoveDir(dir string) error {
	err := os.RemoveAll(dir)
	if err == nil {
		return nil
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		for _, ignorable := range c.IgnorableRemoveErrnos {
			if errno == ignorable {
				return nil
			}
		}
	}

	return fmt.Errorf("remove %s: %w", dir, err)
}
