package translate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultMaxAttempts = 3
	maxResponseBytes   = 1 << 20
)

// StatusError is returned when the upstream answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return fmt.Sprintf("client error: status code %d", e.StatusCode)
	}
	return fmt.Sprintf("server error: status code %d", e.StatusCode)
}

// Retryable reports whether another attempt may succeed.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= 500
}

// RequestBuilder creates a fresh request per attempt so bodies can be replayed.
type RequestBuilder func(ctx context.Context) (*http.Request, error)

// HTTPClient performs translator calls with bounded retries.
type HTTPClient struct {
	client      *http.Client
	maxAttempts int
	backoff     func(attempt int) time.Duration
}

// NewHTTPClient creates a client with pooled connections and a per-call timeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:           10,
		MaxIdleConnsPerHost:    2,
		IdleConnTimeout:        30 * time.Second,
		TLSHandshakeTimeout:    10 * time.Second,
		ResponseHeaderTimeout:  10 * time.Second,
		ExpectContinueTimeout:  1 * time.Second,
		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxAttempts: defaultMaxAttempts,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

// WithBackoff replaces the linear backoff, mostly for tests.
func (h *HTTPClient) WithBackoff(backoff func(attempt int) time.Duration) *HTTPClient {
	h.backoff = backoff
	return h
}

// Do runs the request up to three times and returns the body of the first
// 200 response. Network errors and 5xx are retried, 4xx are not.
func (h *HTTPClient) Do(ctx context.Context, build RequestBuilder) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < h.maxAttempts; attempt++ {
		req, err := build(ctx)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		body, err := h.once(req)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if statusErr, ok := err.(*StatusError); ok && !statusErr.Retryable() {
			return nil, err
		}

		if attempt < h.maxAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(h.backoff(attempt)):
			}
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", h.maxAttempts, lastErr)
}

func (h *HTTPClient) once(req *http.Request) ([]byte, error) {
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
