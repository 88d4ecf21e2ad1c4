// Package api implements the typed REST client for the job-board backend.
//
// Every authenticated request carries the bearer credential supplied by the
// token source; any 401 response triggers the registered unauthorized
// handler exactly once per response, which is how the forced
// logout-and-redirect behavior is wired without the transport layer knowing
// about sessions.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"careerhub/internal/logging"
)

// TokenSource returns the current bearer credential, or "" when
// unauthenticated.
type TokenSource func() string

// HTTPClient talks to the backend REST API.
type HTTPClient struct {
	baseURL        string
	http           *http.Client
	tokenSource    TokenSource
	onUnauthorized func()
	log            logging.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient substitutes the underlying transport (tests, timeouts).
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithTokenSource installs the credential provider consulted per request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokenSource = ts }
}

// WithLogger installs a logger; the default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// New creates a client for the API rooted at baseURL (e.g.
// "https://host/api"). A trailing slash is tolerated.
func New(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHandler registers the hook invoked on any 401 response.
// Registered after construction because the session store that owns the
// forced-logout behavior is built on top of this client.
func (c *HTTPClient) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if c.tokenSource != nil {
		if tok := c.tokenSource(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

// do performs a JSON round trip. in may be nil; out may be nil when the
// response body is irrelevant.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(ctx, resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) checkStatus(ctx context.Context, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := serverMessage(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn(ctx, "unauthorized response, clearing session",
			"url", resp.Request.URL.Path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		if msg == "" {
			return ErrUnauthorized
		}
		// Keep the server's message reachable via errors.As alongside the
		// sentinel, so login failures surface "Invalid credentials"-style
		// text instead of a generic fallback.
		return fmt.Errorf("%w: %w", ErrUnauthorized, &APIError{Status: resp.StatusCode, Message: msg})
	}

	return &APIError{Status: resp.StatusCode, Message: msg}
}

// serverMessage decodes the backend's {"message": ...} error body on a
// best-effort basis.
func serverMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 1<<16)).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}

// upload performs a multipart file upload with the given form field name.
func (c *HTTPClient) upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(ctx, resp); err != nil {
		return err
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
