package findologic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/utafrali/finsearch/internal/domain"
	"github.com/utafrali/finsearch/pkg/httpclient"
)

// Endpoint paths of the external search service.
const (
	searchPath    = "/index.php"
	aliveTestPath = "/alivetest.php"
)

// Client talks to the external search service over HTTP.
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a search service client. baseURL is the service root
// without a trailing slash.
func NewClient(baseURL string, hc *httpclient.Client, logger *slog.Logger) *Client {
	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// IsAlive reports whether the service answers its alive test for the given
// shop key. Any transport error counts as not alive.
func (c *Client) IsAlive(ctx context.Context, shopKey string) bool {
	reqURL := fmt.Sprintf("%s%s?shopkey=%s", c.baseURL, aliveTestPath, url.QueryEscape(shopKey))

	resp, err := c.http.Get(ctx, reqURL)
	if err != nil {
		c.logger.WarnContext(ctx, "alive test failed", slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(body)) == "alive"
}

// Search issues a search request with the given query parameters. An
// unreachable service or a non-OK status yields ErrServiceNotAlive so
// callers can fall back to native search; a malformed response body is a
// distinct parse error.
func (c *Client) Search(ctx context.Context, params url.Values) (*Response, error) {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, searchPath, params.Encode())

	resp, err := c.http.Get(ctx, reqURL)
	if err != nil {
		c.logger.WarnContext(ctx, "search request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("search request: %w", domain.ErrServiceNotAlive)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "search request rejected", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("search request status %d: %w", resp.StatusCode, domain.ErrServiceNotAlive)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	return ParseResponse(body)
}
