package sparql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	resultsMediaType = "application/sparql-results+json"
	maxResponseBody  = 16 << 20 // 16 MiB
)

var (
	// ErrTransport is returned when the endpoint could not be reached.
	ErrTransport = errors.New("sparql: transport failure")
	// ErrQuery is returned when the endpoint rejects the query (4xx).
	ErrQuery = errors.New("sparql: query rejected")
	// ErrUpstream is returned for 5xx responses.
	ErrUpstream = errors.New("sparql: upstream failure")
)

// Client executes SPARQL queries against one endpoint.
type Client interface {
	Query(ctx context.Context, query string) (*Results, error)
}

// Options tunes an HTTPClient. Zero values select defaults.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	RatePerSec float64
	Logger     *slog.Logger
}

// HTTPClient implements Client over the SPARQL 1.1 protocol.
type HTTPClient struct {
	endpoint  *url.URL
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
	client    *http.Client
	logger    *slog.Logger
}

// NewHTTPClient constructs a client bound to a single endpoint.
func NewHTTPClient(endpoint string, opts Options) (*HTTPClient, error) {
	parsed, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse sparql endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("sparql endpoint %q must be http(s)", endpoint)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "filmgraph/1.0"
	}

	var limiter *rate.Limiter
	if opts.RatePerSec > 0 {
		burst := int(opts.RatePerSec)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSec), burst)
	}

	return &HTTPClient{
		endpoint:  parsed,
		userAgent: userAgent,
		timeout:   timeout,
		limiter:   limiter,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
				MaxIdleConnsPerHost:   4,
			},
		},
		logger: logger.With("endpoint", parsed.Host),
	}, nil
}

// Endpoint returns the configured endpoint URL.
func (c *HTTPClient) Endpoint() string {
	return c.endpoint.String()
}

// Query posts query and decodes the JSON results. A query that matches
// nothing yields empty Results, not an error.
func (c *HTTPClient) Query(ctx context.Context, query string) (*Results, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit wait: %w", ErrTransport, err)
		}
	}

	form := url.Values{}
	form.Set("query", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", resultsMediaType)
	req.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("sparql query", "status", resp.StatusCode, "duration", time.Since(started))

	switch {
	case resp.StatusCode == http.StatusOK:
		var payload resultsPayload
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode sparql response: %w", err)
		}
		return convertPayload(payload), nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("sparql query rejected", "status", resp.StatusCode, "body", strings.TrimSpace(string(msg)))
		return nil, fmt.Errorf("%w: status %d", ErrQuery, resp.StatusCode)
	default:
		c.logger.Warn("sparql unexpected status", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
}

// Ping verifies the endpoint answers a trivial ASK query.
func (c *HTTPClient) Ping(ctx context.Context) error {
	res, err := c.Query(ctx, "ASK {}")
	if err != nil {
		return err
	}
	if res.Boolean == nil {
		return fmt.Errorf("%w: ASK returned no boolean", ErrUpstream)
	}
	return nil
}
