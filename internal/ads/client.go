// Package ads provides a rate-limited client for the NASA/ADS search API.
package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the ADS search API base URL.
	BaseURL = "https://api.adsabs.harvard.edu/v1/search/query"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit is 5 requests per second, conservative for ADS quotas.
	RateLimit = 5.0

	// RecordFields are the fields requested for every record lookup.
	RecordFields = "author,year,title,bibcode,reference,citation"

	// DefaultRetries is the total number of attempts per fetch before a
	// transient failure is surfaced.
	DefaultRetries = 5
)

// Client is a rate-limited HTTP client for the ADS search API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	retries    int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithRetries sets the total attempt count for transient failures.
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// NewClient creates a new ADS search API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		retries:    DefaultRetries,
	}

	// Check for API key in environment
	if key := os.Getenv("ADS_API_KEY"); key != "" {
		c.apiKey = key
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	}
	if resp.StatusCode == 429 {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}
	return nil
}

// query performs a single search request for the given bibcode.
func (c *Client) query(ctx context.Context, bibcode string) (*Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("q", "bibcode:"+bibcode)
	params.Set("fl", RecordFields)
	params.Set("rows", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: parsing search result: %v", ErrInvalidResponse, err)
	}

	if result.Response.NumFound == 0 || len(result.Response.Docs) == 0 {
		return nil, fmt.Errorf("%w: bibcode %s", ErrNotFound, bibcode)
	}

	rec := result.Response.Docs[0]
	if rec.Bibcode == "" {
		rec.Bibcode = bibcode
	}
	return &rec, nil
}

// Fetch retrieves the record for a single bibcode. Transient failures
// (rate limiting, server errors, network faults) are retried up to the
// configured attempt count; not-found and auth errors surface immediately.
func (c *Client) Fetch(ctx context.Context, bibcode string) (*Record, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		rec, err := c.query(ctx, bibcode)
		if err == nil {
			return rec, nil
		}
		if !IsTransient(err) {
			return nil, err
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("fetching %s after %d attempts: %w", bibcode, c.retries, lastErr)
}
