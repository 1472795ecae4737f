package backend

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

	"marketplace-console/pkg/apperr"
	"marketplace-console/pkg/metrics"
	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
)

const maxErrorBody = 64 << 10

// Client is the marketplace API as seen by repositories. Every call forwards
// the backend credential stored in ctx (see utils.SetTokenContext).
type Client interface {
	Do(ctx context.Context, req Request, out any) (*Response, error)
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

type Response struct {
	Status  int
	Cookies []*http.Cookie
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewClient creates an API client. No retries and no caching: a failed call
// is returned as is.
func NewClient(config utils.BackendConfig, m *metrics.Metrics, log *zap.Logger) *HTTPClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(config.URL, "/"),
		http: &http.Client{
			Timeout: timeout,
			// the console follows nothing on behalf of the browser
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		},
		log:     log.With(zap.String("component", "backend")),
		metrics: m,
	}
}

func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
	return err
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
	return err
}

func (c *HTTPClient) Put(ctx context.Context, path string, body, out any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
	return err
}

func (c *HTTPClient) Delete(ctx context.Context, path string, out any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
	return err
}

func (c *HTTPClient) Do(ctx context.Context, r Request, out any) (*Response, error) {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, apperr.Wrap(fmt.Errorf("encode %s %s: %w", r.Method, r.Path, err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, apperr.Wrap(fmt.Errorf("build %s %s: %w", r.Method, r.Path, err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := utils.GetTokenFromContext(ctx); ok {
		req.Header.Set("Cookie", token)
	}
	if id := utils.GetRequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.BackendFailed(r.Method)
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.log.Warn("Backend request failed",
			zap.String("method", r.Method),
			zap.String("path", r.Path),
			zap.Error(err),
		)
		return nil, &apperr.AppError{
			Kind: apperr.Unavailable,
			Err:  fmt.Errorf("%s %s: %w", r.Method, r.Path, err),
		}
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackend(r.Method, resp.StatusCode, time.Since(start))

	result := &Response{Status: resp.StatusCode, Cookies: resp.Cookies()}

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := errorMessage(raw)
		c.log.Debug("Backend returned error",
			zap.String("method", r.Method),
			zap.String("path", r.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return result, apperr.FromStatus(resp.StatusCode, msg,
			fmt.Errorf("%s %s: status %d", r.Method, r.Path, resp.StatusCode))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return result, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return result, apperr.Wrap(fmt.Errorf("decode %s %s: %w", r.Method, r.Path, err))
	}
	return result, nil
}

// errorMessage extracts {"message": "..."} (or "error") from an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// CookieHeader renders cookies as a Cookie request header value.
func CookieHeader(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" || c.MaxAge < 0 {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}
