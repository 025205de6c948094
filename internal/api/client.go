// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

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
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 10 * 1024 * 1024

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Credentials supplies the bearer credential for each request. An empty
// credential sends no Authorization header.
type Credentials interface {
	Credential() string
}

// Options describes a single call.
type Options struct {
	// Method defaults to GET
	Method string
	// Body is sent as JSON, or as multipart when it is a *Form
	Body any
	// Query is appended to the path
	Query url.Values
}

// Client talks to the companion server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      Credentials
	logger     *zap.Logger
}

// New creates a client for baseURL. creds may be nil for anonymous use.
// There is no request timeout unless WithTimeout is called.
func New(baseURL string, creds Credentials, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("api")
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &tracingTransport{base: http.DefaultTransport, logger: logger},
		},
		creds:  creds,
		logger: logger,
	}
}

// WithTimeout sets an overall per-request timeout. Zero disables it.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithTransport replaces the underlying transport. Request ids and logging
// are kept.
func (c *Client) WithTransport(rt http.RoundTripper) *Client {
	c.httpClient.Transport = &tracingTransport{base: rt, logger: c.logger}
	return c
}

// BaseURL returns the server root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// CALL
// =============================================================================

// Call performs one request and returns the raw JSON result. A 204 response,
// or an empty body, yields a nil result.
func (c *Client) Call(ctx context.Context, path string, opts Options) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + path
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	body, contentType, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp.StatusCode, data, MsgRequestFailed)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

// CallJSON performs Call and decodes the result into out. out may be nil.
func (c *Client) CallJSON(ctx context.Context, path string, opts Options, out any) error {
	raw, err := c.Call(ctx, path, opts)
	if err != nil {
		return err
	}
	if out == nil || raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}

// authorize attaches the bearer credential, if there is one.
func (c *Client) authorize(req *http.Request) {
	if c.creds == nil {
		return
	}
	credential := c.creds.Credential()
	if credential == "" {
		return
	}
	token := &oauth2.Token{AccessToken: credential, TokenType: "Bearer"}
	token.SetAuthHeader(req)
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "application/json", nil
	case *Form:
		return b.encode()
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(data) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return data, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// tracingTransport stamps each request with an id and logs the outcome.
// Headers and bodies are never logged.
type tracingTransport struct {
	base   http.RoundTripper
	logger *zap.Logger
}

func (t *tracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	req = req.Clone(req.Context())
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req.Header.Set(RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	fields := []zap.Field{
		zap.String("request_id", id),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		t.logger.Warn("request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	t.logger.Debug("request finished", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}
