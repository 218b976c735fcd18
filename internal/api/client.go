package api

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

	"github.com/rs/zerolog"

	"github.com/cultivar-dev/cultivar/internal/api/cache"
	"github.com/cultivar-dev/cultivar/internal/config"
	"github.com/cultivar-dev/cultivar/internal/logging"
)

// Header names.
const (
	HeaderRequestID = "X-Request-ID"
	headerCookie    = "Cookie"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Client talks to the cultivation backend.
type Client struct {
	// HTTPClient performs the requests. Replaceable in tests.
	HTTPClient *http.Client

	baseURL    *url.URL
	authCookie string
	cache      *cache.FileStore
	cacheScope string
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCache serves list calls from store.
func WithCache(store *cache.FileStore) Option {
	return func(c *Client) {
		if store != nil && store.IsEnabled() {
			c.cache = store
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.ComponentLogger(l, "api")
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = hc
	}
}

// New creates a client from the API configuration.
func New(cfg config.APIConfig, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBaseURL, cfg.BaseURL)
	}

	c := &Client{
		HTTPClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    base,
		authCookie: cfg.AuthCookie,
		cacheScope: cache.Scope(base.String(), cfg.AuthCookie),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// request describes one call.
type request struct {
	method   string
	path     string
	query    url.Values
	body     any
	expected int
	noAuth   bool
}

// do performs req and returns the response body.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	if !req.noAuth && c.authCookie == "" {
		return nil, ErrNotAuthenticated
	}

	target := c.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		target.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if !req.noAuth {
		httpReq.Header.Set(headerCookie, c.authCookie)
	}
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		httpReq.Header.Set(HeaderRequestID, traceID)
	}

	c.logger.Debug().Ctx(ctx).Str("method", req.method).Str("path", req.path).Msg("request")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	expected := req.expected
	if expected == 0 {
		expected = http.StatusOK
	}
	if resp.StatusCode != expected {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		code, detail := parseErrorCode(errBody)
		statusErr := &StatusError{
			Method: req.method,
			Path:   req.path,
			Status: resp.StatusCode,
			Code:   code,
			Detail: detail,
		}
		c.logger.Debug().Ctx(ctx).Err(statusErr).Msg("request failed")
		return nil, statusErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", req.method, req.path, err)
	}
	return data, nil
}

// ListOption adjusts a list call.
type ListOption func(*listOptions)

type listOptions struct {
	fresh bool
}

// Fresh fetches from the backend even when a cached copy is valid. The
// response replaces the cached copy.
func Fresh() ListOption {
	return func(o *listOptions) {
		o.fresh = true
	}
}

// list fetches a collection filtered by query, using the cache when attached.
func list[T any](ctx context.Context, c *Client, path, query string, opts []ListOption) ([]T, error) {
	var lo listOptions
	for _, opt := range opts {
		opt(&lo)
	}

	key := cache.Key(c.cacheScope, path, query)
	if c.cache != nil && !lo.fresh {
		if entry, err := c.cache.Get(key); err == nil {
			var out []T
			if err = json.Unmarshal(entry.Data, &out); err == nil {
				c.logger.Debug().Ctx(ctx).Str("path", path).Str("query", query).Msg("cache hit")
				return out, nil
			}
		} else if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheExpired) {
			c.logger.Warn().Ctx(ctx).Err(err).Msg("cache read failed")
		}
	}

	var params url.Values
	if query != "" {
		params = url.Values{"query": []string{query}}
	}
	data, err := c.do(ctx, request{method: http.MethodGet, path: path, query: params})
	if err != nil {
		return nil, err
	}

	var out []T
	if err = json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}
	if out == nil {
		out = []T{}
	}

	if c.cache != nil {
		if setErr := c.cache.Set(key, data); setErr != nil {
			c.logger.Warn().Ctx(ctx).Err(setErr).Msg("cache write failed")
		}
	}
	return out, nil
}

// create posts v to path and decodes the created record. The backend answers 201.
func create[T any](ctx context.Context, c *Client, path string, v any) (T, error) {
	var out T
	data, err := c.do(ctx, request{method: http.MethodPost, path: path, body: v, expected: http.StatusCreated})
	if err != nil {
		return out, err
	}
	c.invalidate(ctx, path)

	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err = json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding %s response: %w", path, err)
	}
	return out, nil
}

// remove deletes the record id of the collection at path.
func (c *Client) remove(ctx context.Context, path, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyID
	}
	if _, err := c.do(ctx, request{method: http.MethodDelete, path: path + "/" + url.PathEscape(id)}); err != nil {
		return err
	}
	c.invalidate(ctx, path)
	return nil
}

// invalidate drops every cached list of the collection at path.
func (c *Client) invalidate(ctx context.Context, path string) {
	if c.cache == nil {
		return
	}
	removed, err := c.cache.DeletePrefix(cache.Prefix(c.cacheScope, path))
	if err != nil {
		c.logger.Warn().Ctx(ctx).Err(err).Str("path", path).Msg("cache invalidation failed")
		return
	}
	c.logger.Debug().Ctx(ctx).Str("path", path).Int("removed", removed).Msg("cache invalidated")
}
