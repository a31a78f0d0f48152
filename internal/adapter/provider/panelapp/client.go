// Package panelapp fetches entity lists from the Genomics England PanelApp
// REST API.
package panelapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/genedisease-ingest/internal/adapter/retry"
	"github.com/heartmarshall/genedisease-ingest/internal/domain"
)

const defaultBaseURL = "https://panelapp.genomicsengland.co.uk/api/v1"

// Entity types served by the API.
const (
	EntityGenes   = "genes"
	EntityStrs    = "strs"
	EntityRegions = "regions"
)

// ValidEntity reports whether entity is served by the API.
func ValidEntity(entity string) bool {
	switch entity {
	case EntityGenes, EntityStrs, EntityRegions:
		return true
	}
	return false
}

// Client walks paginated PanelApp endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	policy     retry.Policy
	log        *slog.Logger
}

// NewClient creates a Client for the public PanelApp API.
func NewClient(httpClient *http.Client, policy retry.Policy, logger *slog.Logger) *Client {
	return NewClientWithURL(defaultBaseURL, httpClient, policy, logger)
}

// NewClientWithURL creates a Client with a custom base URL.
func NewClientWithURL(baseURL string, httpClient *http.Client, policy retry.Policy, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Minute}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		policy:     policy,
		log:        logger.With("adapter", "panelapp"),
	}
}

// FetchAll returns the results of every page of entity, following the next
// link until it is null.
func (c *Client) FetchAll(ctx context.Context, entity string) ([]map[string]any, error) {
	if !ValidEntity(entity) {
		return nil, fmt.Errorf("panelapp: unknown entity %q", entity)
	}

	var (
		results []map[string]any
		pages   int
	)
	next := c.baseURL + "/" + entity + "/"
	for next != "" {
		page, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}
		pages++
		results = append(results, page.Results...)

		c.log.DebugContext(ctx, "panelapp page",
			slog.String("entity", entity),
			slog.Int("page", pages),
			slog.Int("results", len(page.Results)),
		)

		next = ""
		if page.Next != nil {
			next = *page.Next
		}
	}

	c.log.InfoContext(ctx, "panelapp fetched",
		slog.String("entity", entity),
		slog.Int("pages", pages),
		slog.Int("results", len(results)),
	)
	return results, nil
}

func (c *Client) fetchPage(ctx context.Context, url string) (*apiPage, error) {
	policy := c.policy
	policy.OnRetry = func(attempt int, wait time.Duration, err error) {
		c.log.WarnContext(ctx, "panelapp retry",
			slog.String("url", url),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()),
		)
	}

	var page *apiPage
	attempts, err := policy.Do(ctx, func(ctx context.Context) error {
		body, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		page, err = decodePage(body)
		if err != nil {
			return retry.Permanent(fmt.Errorf("decode json: %w", err))
		}
		return nil
	})
	if err != nil {
		c.log.ErrorContext(ctx, "panelapp request failed",
			slog.String("url", url),
			slog.Int("attempts", attempts),
			slog.String("error", err.Error()),
		)
		return nil, &domain.TransportError{URL: url, Attempts: attempts, Err: err}
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// WriteDump saves results to path as {"results": [...]} indented by four
// spaces.
func WriteDump(path string, results []map[string]any) error {
	if results == nil {
		results = []map[string]any{}
	}
	data, err := json.MarshalIndent(dump{Results: results}, "", "    ")
	if err != nil {
		return fmt.Errorf("panelapp: encode dump: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("panelapp: write dump: %w", err)
	}
	return nil
}

// WriteDump saves results fetched by c to path.
func (c *Client) WriteDump(path string, results []map[string]any) error {
	if err := WriteDump(path, results); err != nil {
		return err
	}
	c.log.Debug("dump written", slog.String("path", path), slog.Int("results", len(results)))
	return nil
}
