package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kika-project/kika-sampling/pkg/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys for the KIKA client
const (
	// RequestIDContextKey is the context key for a caller-chosen request ID
	RequestIDContextKey contextKey = "kika-request-id"
)

// RequestIDHeader carries the request ID on every call.
const RequestIDHeader = "X-Request-ID"

// Kika is the client for the KIKA processing service
type Kika struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	// streamClient has no overall timeout; dry-run streams last as long as
	// the job does.
	streamClient *http.Client
}

// Config holds the configuration for the KIKA client
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// HTTPClient overrides the transport. Its Timeout is replaced by Timeout
	// for regular calls and cleared for streams.
	HTTPClient *http.Client
}

// NewClient creates a new KIKA client with the given configuration
func NewClient(cfg Config) (*Kika, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q must include scheme and host", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	regular := *base
	regular.Timeout = timeout
	stream := *base
	stream.Timeout = 0

	return &Kika{
		baseURL:      u.String(),
		apiKey:       cfg.APIKey,
		httpClient:   &regular,
		streamClient: &stream,
	}, nil
}

// BaseURL returns the normalized service URL
func (c *Kika) BaseURL() string {
	return c.baseURL
}

// newRequest builds a JSON request with authentication and tracing headers
func (c *Kika) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID, ok := ctx.Value(RequestIDContextKey).(string)
	if !ok || requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, requestID)

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return req, nil
}

// do performs the request and turns error statuses into *APIError
func (c *Kika) do(hc *http.Client, req *http.Request) (*http.Response, error) {
	logger.Debugf("%s %s (%s)", req.Method, req.URL.Path, req.Header.Get(RequestIDHeader))

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer closeBody(resp.Body)
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, newAPIError(resp.StatusCode, bodyBytes)
	}

	return resp, nil
}

// doRequest performs a regular JSON call
func (c *Kika) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return c.do(c.httpClient, req)
}

// decodeResponse decodes a JSON response into the provided interface
func decodeResponse(resp *http.Response, v interface{}) error {
	defer closeBody(resp.Body)

	if v == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logger.Errorf("failed to close response body: %v", err)
	}
}

// WithRequestID returns a new context whose requests carry the given ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}
