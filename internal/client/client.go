// Package client talks to a running Chronicler API server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/josephgoksu/Chronicler/internal/pipeline"
	"github.com/josephgoksu/Chronicler/internal/server"
	"github.com/josephgoksu/Chronicler/internal/store"
)

// DefaultBaseURL is where the CLI expects the API server when nothing is configured.
const DefaultBaseURL = "http://localhost:8000"

// ErrServerUnreachable is returned when no response could be obtained.
var ErrServerUnreachable = errors.New("cannot connect to API server")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Detail)
}

// IsCode reports whether err is an APIError carrying code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// Client is a typed HTTP client for the changelog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for baseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// BaseURL returns the server address the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Generate asks the server to build a changelog.
func (c *Client) Generate(ctx context.Context, req server.GenerateRequest) (*pipeline.Result, error) {
	var res pipeline.Result
	if err := c.do(ctx, http.MethodPost, "/api/generate", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Publish stores a changelog under a version.
func (c *Client) Publish(ctx context.Context, req server.PublishRequest) (*store.Changelog, error) {
	var saved store.Changelog
	if err := c.do(ctx, http.MethodPost, "/api/publish", req, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// List returns published changelogs, newest first.
func (c *Client) List(ctx context.Context) ([]store.Changelog, error) {
	var list []store.Changelog
	if err := c.do(ctx, http.MethodGet, "/api/changelog?published_only=true", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns the published changelog for version.
func (c *Client) Get(ctx context.Context, version string) (*store.Changelog, error) {
	var cl store.Changelog
	if err := c.do(ctx, http.MethodGet, "/api/changelog/"+url.PathEscape(version), nil, &cl); err != nil {
		return nil, err
	}
	return &cl, nil
}

// Health returns the server health report.
func (c *Client) Health(ctx context.Context) (*server.HealthResponse, error) {
	var h server.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w at %s: %v", ErrServerUnreachable, c.baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body server.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Code = body.Error
		apiErr.Detail = body.Detail
		return apiErr
	}

	apiErr.Code = http.StatusText(resp.StatusCode)
	apiErr.Detail = strings.TrimSpace(string(data))
	return apiErr
}
