package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bank-booking-portal/internal/logging"
)

// Envelope is the outcome of one backend call: exactly one of Data or
// Error is set.
type Envelope[T any] struct {
	Data  *T     `json:"data"`
	Error string `json:"error,omitempty"`

	err error
}

func Ok[T any](v T) Envelope[T] {
	return Envelope[T]{Data: &v}
}

func Fail[T any](err error) Envelope[T] {
	return Envelope[T]{Error: err.Error(), err: err}
}

func (e Envelope[T]) OK() bool {
	return e.Data != nil
}

// Unwrap turns the envelope back into a Go value/error pair.
func (e Envelope[T]) Unwrap() (T, error) {
	if e.Data != nil {
		return *e.Data, nil
	}
	var zero T
	if e.err != nil {
		return zero, e.err
	}
	return zero, fmt.Errorf("%s", e.Error)
}

// Client talks to one backend resource rooted at baseURL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: logging.OrNop(log),
	}
}

// WithHTTPClient swaps the transport; tests point it at httptest servers.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// ======================================================
// LOW LEVEL
// ======================================================

// do performs the request and returns the raw body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("remote: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("remote: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: method + " " + path, Err: err}
	}

	c.log.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &payload)
		return nil, rejection(resp.StatusCode, payload.Message)
	}
	return raw, nil
}

func fetch[T any](ctx context.Context, c *Client, method, path string, body any) Envelope[T] {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return Fail[T](err)
	}

	var out T
	if len(bytes.TrimSpace(raw)) == 0 {
		return Ok(out)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Fail[T](fmt.Errorf("remote: decode %s %s: %w", method, path, err))
	}
	return Ok(out)
}

// fetchText returns the body verbatim, minus surrounding quotes.
func fetchText(ctx context.Context, c *Client, method, path string, body any) Envelope[string] {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return Fail[string](err)
	}
	return Ok(strings.Trim(strings.TrimSpace(string(raw)), `"`))
}
