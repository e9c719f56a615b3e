package vortex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mattjoyce/vortex/token"
)

const (
	// DefaultBaseURL is the production platform endpoint.
	DefaultBaseURL = "https://api.vortexsoftware.com"

	defaultTimeout = 10 * time.Second
	apiKeyHeader   = "x-api-key"
)

// Config holds the configuration for a Vortex client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// HTTPClient replaces the default client; Timeout is ignored when set.
	HTTPClient *http.Client
	UserAgent  string
	Logger     *slog.Logger
}

// Client is the Vortex SDK client. It is safe for concurrent use.
type Client struct {
	apiKey    string
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *slog.Logger
}

// New creates a new Vortex client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "vortex-go-sdk/" + Version
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      httpClient,
		logger:    logger,
	}
}

// GenerateJWT mints a token for id with the client's API key. No request is
// made.
func (c *Client) GenerateJWT(id token.Identity, extensions map[string]any) (string, error) {
	return token.Mint(c.apiKey, id, extensions)
}

// do sends a request and decodes a 2xx JSON body into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &UnexpectedResponseError{Message: fmt.Sprintf("failed to encode request: %s", err), Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return &UnexpectedResponseError{Message: fmt.Sprintf("failed to create request: %s", err), Err: err}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("vortex request failed", "method", method, "path", path, "error", err)
		return &UnexpectedResponseError{Message: fmt.Sprintf("network error: %s", err), Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("vortex request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UnexpectedResponseError{Message: fmt.Sprintf("failed to read response: %s", err), StatusCode: resp.StatusCode, Err: err}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &UnexpectedResponseError{Message: fmt.Sprintf("failed to decode response: %s", err), StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	message := http.StatusText(resp.StatusCode)
	var errResp errorBody
	if json.Unmarshal(body, &errResp) == nil {
		switch {
		case errResp.Error != "":
			message = errResp.Error
		case errResp.Message != "":
			message = errResp.Message
		}
	}
	if message == "" {
		message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return newStatusError(resp.StatusCode, message)
}
