package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/mohammad-safakhou/fitcoach/internal/telemetry"
)

// ErrMalformedResponse marks a 2xx response whose body could not be turned
// into the expected value.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is a non-2xx reply. Body is truncated to 4 KiB.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// ExhaustedError is returned once every attempt has failed. Unwrap yields the
// last attempt's error unchanged.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d attempts failed: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Client posts JSON payloads and retries failed attempts with exponential
// backoff: attempt i (0-based) that fails waits base*2^i before the next one.
type Client struct {
	http     *http.Client
	attempts int
	backoff  time.Duration
	headers  map[string]string
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetry sets the total number of attempts and the backoff base. Zero
// values keep the defaults.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithSleep replaces the wait between attempts.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client making 3 attempts with a 1s base backoff unless
// overridden. Requests carry no timeout of their own; callers bound them
// through the context.
func New(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{},
		attempts: 3,
		backoff:  time.Second,
		headers:  map[string]string{},
		sleep:    sleepContext,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "httpclient")
	return c
}

// Attempts reports the configured attempt budget.
func (c *Client) Attempts() int { return c.attempts }

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do posts payload to url and hands each 2xx body to extract. A transport
// error, a non-2xx status or an extractor error all count as a failed attempt.
// endpoint names the trace span and labels metrics and logs.
func Do[T any](ctx context.Context, c *Client, endpoint, url string, payload any, extract func([]byte) (T, error)) (T, error) {
	var zero T
	body, err := json.Marshal(payload)
	if err != nil {
		return zero, fmt.Errorf("encode payload: %w", err)
	}

	ctx, span := otel.Tracer("fitcoach/httpclient").Start(ctx, "remote_call "+endpoint)
	defer span.End()

	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		start := time.Now()
		v, err := attemptOnce(ctx, c, url, body, extract)
		telemetry.RecordAttempt(ctx, endpoint, time.Since(start), err != nil)
		if err == nil {
			span.SetAttributes(attribute.Int("attempts", attempt+1))
			return v, nil
		}
		span.RecordError(err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			span.SetStatus(codes.Error, ctxErr.Error())
			return zero, ctxErr
		}
		lastErr = err
		c.logger.Warn("remote call attempt failed", "endpoint", endpoint, "attempt", attempt+1, "of", c.attempts, "error", err)

		if attempt < c.attempts-1 {
			if err := c.sleep(ctx, c.backoff*time.Duration(1<<attempt)); err != nil {
				return zero, err
			}
		}
	}
	span.SetStatus(codes.Error, "attempts exhausted")
	return zero, &ExhaustedError{Attempts: c.attempts, Err: lastErr}
}

func attemptOnce[T any](ctx context.Context, c *Client, url string, body []byte, extract func([]byte) (T, error)) (T, error) {
	var zero T
	raw, err := c.post(ctx, url, body)
	if err != nil {
		return zero, err
	}
	v, err := extract(raw)
	if err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			return zero, err
		}
		return zero, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return v, nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(b)}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return raw, nil
}
