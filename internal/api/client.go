// Package api is the typed HTTP client for the traceability backend.
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
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/covtrace/tracetriage/internal/model"
)

const apiPrefix = "/api/v1"

// Client issues authenticated requests against the backend REST API.
// All methods are safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

// New creates a client for the given base URL. A zero timeout defaults
// to 30 seconds; a hung backend must never leave the UI disabled forever.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token, empty if unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetUnauthorizedHook registers the callback fired when an authenticated
// request comes back 401. The session store owns this hook; call sites
// deep in the UI never deal with forced logout directly.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

// do issues a JSON request and decodes the JSON response into out.
// out may be nil when the response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	data, err := c.raw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// raw issues a request and returns the response body bytes. Used directly
// for blob downloads (CSV exports).
func (c *Client) raw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	u := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	apiErr := c.mapError(resp.StatusCode, data)

	// A 401 on an authenticated request means the session is dead.
	// Login and register carry no token, so a bad password never
	// triggers a forced logout.
	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		c.mu.RLock()
		hook := c.onUnauthorized
		c.mu.RUnlock()
		if hook != nil {
			hook()
		}
	}

	return nil, apiErr
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) mapError(status int, data []byte) error {
	var eb errorBody
	_ = json.Unmarshal(data, &eb)
	msg := eb.Error

	switch status {
	case http.StatusUnauthorized:
		return &model.AuthError{Message: msg}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &model.ValidationError{Message: msg}
	case http.StatusNotFound:
		return &model.NotFoundError{Resource: msg}
	case http.StatusConflict:
		return &model.ConflictError{Message: msg}
	default:
		return &model.APIError{Status: status, Message: msg}
	}
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprint(pageSize))
	}
	return q
}
