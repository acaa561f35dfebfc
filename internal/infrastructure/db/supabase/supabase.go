// Package supabase is the credentialed client for the external auth+data
// store: GoTrue under /auth/v1 and PostgREST under /rest/v1, both fronting the
// same Postgres database. One Client is created at startup with the service
// role key and shared by every repository; it is safe for concurrent use.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/leadnest/leadnest-api/internal/api/metrics"
	"github.com/leadnest/leadnest-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

const (
	componentREST = "rest"
	componentAuth = "auth"
	componentRPC  = "rpc"
)

// Config captures the settings for reaching the Supabase project.
type Config struct {
	URL        string
	ServiceKey string
	Timeout    time.Duration
}

// Client performs raw REST calls against the store. Repositories in this
// package wrap it with table-specific operations.
type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

// New validates the configuration and returns a ready client. The timeout
// bounds every upstream call; a breach surfaces as an unavailable-store error.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.ServiceKey == "" {
		return nil, fmt.Errorf("supabase: URL and service role key are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		serviceKey: cfg.ServiceKey,
		http:       &http.Client{Timeout: timeout},
	}, nil
}

// Health checks that the auth service answers. Used by the readiness probe.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, componentAuth, http.MethodGet, c.baseURL+"/auth/v1/health", nil, nil)
	if err != nil {
		return err
	}
	if resp.status >= 400 {
		return fmt.Errorf("supabase health: status %d", resp.status)
	}
	return nil
}

// response is the decoded-enough result of one upstream call.
type response struct {
	status       int
	body         []byte
	contentRange string
}

// do executes a single upstream request. The service role key is attached as
// both apikey and bearer unless the caller overrides Authorization (the token
// verifier does, to resolve a user token). Transport failures wrap
// domain.ErrUpstreamUnavailable.
func (c *Client) do(ctx context.Context, component, method, rawURL string, headers map[string]string, body any) (*response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("supabase: encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("supabase: build request: %w", err)
	}

	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(component, "transport_error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(component, "transport_error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstreamUnavailable, err)
	}

	metrics.UpstreamRequestDuration.WithLabelValues(component, outcomeLabel(resp.StatusCode)).Observe(time.Since(start).Seconds())

	return &response{
		status:       resp.StatusCode,
		body:         payload,
		contentRange: resp.Header.Get("Content-Range"),
	}, nil
}

func outcomeLabel(status int) string {
	switch {
	case status >= 500:
		return "server_error"
	case status >= 400:
		return "client_error"
	default:
		return "ok"
	}
}

// rest performs a call against /rest/v1/<table>.
func (c *Client) rest(ctx context.Context, method, table string, query url.Values, headers map[string]string, body any) (*response, error) {
	rawURL := c.baseURL + "/rest/v1/" + url.PathEscape(table)
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}
	return c.do(ctx, componentREST, method, rawURL, headers, body)
}

// rpc invokes a server-side function under /rest/v1/rpc.
func (c *Client) rpc(ctx context.Context, fn string, args any) (*response, error) {
	rawURL := c.baseURL + "/rest/v1/rpc/" + url.PathEscape(fn)
	return c.do(ctx, componentRPC, http.MethodPost, rawURL, nil, args)
}

// exactCount issues a zero-row read with Prefer: count=exact and parses the
// total from the Content-Range header ("0-0/7" or "*/0").
func (c *Client) exactCount(ctx context.Context, table string, query url.Values) (int, error) {
	headers := map[string]string{
		"Prefer": "count=exact",
		"Range":  "0-0",
	}
	resp, err := c.rest(ctx, http.MethodGet, table, query, headers, nil)
	if err != nil {
		return 0, err
	}
	// 416 shows up when the table slice is empty but the count is still in
	// the header, so it is not an error here.
	if resp.status >= 400 && resp.status != http.StatusRequestedRangeNotSatisfiable {
		return 0, fmt.Errorf("%w: count on %s: status %d: %s", domain.ErrUpstreamRead, table, resp.status, snippet(resp.body))
	}
	return parseContentRangeTotal(resp.contentRange)
}

func parseContentRangeTotal(contentRange string) (int, error) {
	_, total, ok := strings.Cut(contentRange, "/")
	if !ok || total == "*" {
		return 0, fmt.Errorf("%w: unparseable Content-Range %q", domain.ErrUpstreamRead, contentRange)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("%w: unparseable Content-Range %q", domain.ErrUpstreamRead, contentRange)
	}
	return n, nil
}

// snippet trims an upstream error body for log/error messages.
func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// inList renders a PostgREST in-operator value: in.(a,b,c).
func inList(ids []string) string {
	return "in.(" + strings.Join(ids, ",") + ")"
}
