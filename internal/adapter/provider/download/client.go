// Package download saves remote files to local paths.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/genedisease-ingest/internal/adapter/retry"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

// Client downloads files over HTTP through a retry policy.
type Client struct {
	httpClient *http.Client
	policy     retry.Policy
	log        *slog.Logger
}

// NewClient creates a Client. A nil httpClient uses a client with a one-minute
// timeout.
func NewClient(httpClient *http.Client, policy retry.Policy, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Minute}
	}
	return &Client{
		httpClient: httpClient,
		policy:     policy,
		log:        logger.With("adapter", "download"),
	}
}

// Fetch downloads url into dst. The file is written to a temporary sibling
// and renamed on success, so dst is never left half-written. Once the retry
// schedule is exhausted Fetch returns a *domain.TransportError.
func (c *Client) Fetch(ctx context.Context, url, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("download: create dir: %w", err)
	}

	start := time.Now()
	policy := c.policy
	policy.OnRetry = func(attempt int, wait time.Duration, err error) {
		c.log.WarnContext(ctx, "download retry",
			slog.String("url", url),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()),
		)
	}

	attempts, err := policy.Do(ctx, func(ctx context.Context) error {
		return c.fetchOnce(ctx, url, dst)
	})
	if err != nil {
		c.log.ErrorContext(ctx, "download failed",
			slog.String("url", url),
			slog.Int("attempts", attempts),
			slog.String("error", err.Error()),
		)
		return &domain.TransportError{URL: url, Attempts: attempts, Err: err}
	}

	c.log.InfoContext(ctx, "downloaded",
		slog.String("url", url),
		slog.String("path", dst),
		slog.Int("attempts", attempts),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (c *Client) fetchOnce(ctx context.Context, url, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return retry.Permanent(fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.part")
	if err != nil {
		return retry.Permanent(fmt.Errorf("create temp file: %w", err))
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("read body: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return retry.Permanent(fmt.Errorf("close temp file: %w", err))
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return retry.Permanent(fmt.Errorf("rename: %w", err))
	}
	return nil
}
