// Spotify Web API client.
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tempo/auth"
)

// DefaultBaseURL is the Spotify Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1"

// Client issues typed, authenticated requests against the Web API. It is
// safe for concurrent use; credential validation and refresh serialize on
// the shared [auth.Store] while the HTTP exchanges themselves run in
// parallel.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *auth.Store
	refresher  *auth.Refresher
	logger     *log.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the transport. Timeouts belong on this client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger attaches a logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client over an [auth.Store] that has been (or will be)
// populated by an authorization flow.
func New(cfg auth.Config, store *auth.Store, opts ...Option) (*Client, error) {
	refresher, err := auth.NewRefresher(cfg, store)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		store:      store,
		refresher:  refresher,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c, nil
}

// Raw performs an authenticated request for a path the typed surface does
// not cover. A nil out discards any response body; a 2xx response with an
// empty body succeeds without decoding.
func (c *Client) Raw(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.do(ctx, method, c.endpoint(path, query), body, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, c.endpoint(path, query), nil, out)
}

// getOptional is get for endpoints that legitimately answer 2xx with no
// body. It reports whether a body was decoded into out.
func (c *Client) getOptional(ctx context.Context, path string, query url.Values, out any) (bool, error) {
	if err := c.refresher.EnsureValid(ctx); err != nil {
		return false, err
	}
	return c.send(ctx, http.MethodGet, c.endpoint(path, query), nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPost, c.endpoint(path, query), body, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPut, c.endpoint(path, query), body, out)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(path, query), body, out)
}

// getURL fetches an absolute URL through the authenticated pipeline.
// Pagination continuation links are resolved this way, verbatim, rather
// than by rebuilding query strings.
func (c *Client) getURL(ctx context.Context, rawURL string, out any) error {
	return c.do(ctx, http.MethodGet, rawURL, nil, out)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do runs the full pipeline for one logical call: ensure valid
// credentials, send, classify, decode.
//
// [auth.ErrReauthorizationRequired] propagates as-is and is never silently
// retried.
func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {
	if err := c.refresher.EnsureValid(ctx); err != nil {
		return err
	}
	_, err := c.send(ctx, method, rawURL, body, out, true)
	return err
}

// send performs one transport exchange plus classification. The returned
// bool reports whether a response body was decoded into out.
func (c *Client) send(ctx context.Context, method, rawURL string, body, out any, retryAuth bool) (bool, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return false, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	ts := c.store.Current()
	if ts == nil {
		return false, auth.ErrNotAuthenticated
	}
	req.Header.Set("Authorization", "Bearer "+ts.AccessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &APIError{Kind: KindNetwork, Message: err.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized && retryAuth {
		// The server rejected a token the store considered live (revoked
		// or clock drift). One forced refresh, one retry, never a loop.
		c.logger.Debug("access token rejected, refreshing once", "url", rawURL)
		if err := c.refresher.Refresh(ctx); err != nil {
			return false, err
		}
		return c.send(ctx, method, rawURL, body, out, false)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, newAPIError(resp, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		// 204s and empty 200s (playback PUTs) are a success, not a
		// deserialization failure.
		return false, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, &APIError{
			Status:  resp.StatusCode,
			Kind:    KindMalformedResponse,
			Message: fmt.Sprintf("failed to decode response: %v", err),
		}
	}
	return true, nil
}
