// Package gateway dispatches JSON requests to the booking API.
//
// Every request carries the stored bearer credential when one exists.
// Failures are classified into three kinds:
//   - no response (timeout, DNS, refused): retried up to MaxRetries more
//     times with exponential backoff (2s, 4s, 8s by default), then ErrNetwork
//   - 401: the session is cleared, OnUnauthorized fires, ErrUnauthorized; never retried
//   - any other non-2xx: ErrServer with the server's message; never retried
//
// Retry state lives in the loop of a single Do call. Concurrent requests
// never share a retry budget.
package gateway

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

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/homebook/pkg/logger"
	"github.com/ghuser/homebook/pkg/telemetry"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryBase  = 2 * time.Second

	maxResponseBytes = 1 << 20
	meterScope       = "github.com/ghuser/homebook/pkg/gateway"
)

// CredentialSource is the slice of the session store the gateway needs.
// session.Store satisfies it.
type CredentialSource interface {
	Credential(ctx context.Context) (token string, ok bool, err error)
	Clear(ctx context.Context) error
}

// Request describes one logical API call.
type Request struct {
	Method string
	// Path is appended to the base URL, e.g. "/bookings".
	Path  string
	Query url.Values
	// Body is JSON-encoded once; retries replay the same bytes.
	Body any
	// IdempotencyKey is sent as the Idempotency-Key header when non-empty.
	IdempotencyKey string
	Header         http.Header
}

// Client is safe for concurrent use.
type Client struct {
	baseURL        string
	creds          CredentialSource
	http           *http.Client
	log            logger.Logger
	timeout        time.Duration
	maxRetries     int
	retryBase      time.Duration
	onUnauthorized func(ctx context.Context)
	wait           func(ctx context.Context, d time.Duration) error

	requests *telemetry.Counter
	retries  *telemetry.Counter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default otelhttp-instrumented client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for retry and session-invalidation records.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeout bounds each attempt. The caller's context still bounds the
// whole call, backoff included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxRetries sets how many extra attempts follow a transport failure.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithRetryBase sets the first backoff delay; each later one doubles.
func WithRetryBase(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryBase = d
		}
	}
}

// WithOnUnauthorized registers fn to run after a 401 cleared the session.
func WithOnUnauthorized(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New returns a Client for the API rooted at baseURL (e.g. "https://api.example.com/api").
func New(baseURL string, creds CredentialSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		http:       &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		log:        logger.Nop(),
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		retryBase:  DefaultRetryBase,
		wait:       sleep,
		requests:   telemetry.NewCounter(meterScope, "gateway.requests", "API requests by method and outcome"),
		retries:    telemetry.NewCounter(meterScope, "gateway.retries", "Retries after transport failures"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path}, out)
}

// Post issues a POST with body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put issues a PUT with body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Patch issues a PATCH with body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete issues a DELETE and decodes the response, if any, into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// Do sends req and decodes a 2xx JSON response into out (ignored when nil).
// Failures are returned as *Error, except a request that cannot be built,
// which wraps ErrInvalidRequest.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var payload []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("%w: encode body: %v", ErrInvalidRequest, err)
		}
		payload = b
	}

	token, hasToken, err := c.creds.Credential(ctx)
	if err != nil {
		c.log.WarnContext(ctx, "gateway: credential lookup failed, sending anonymously", "error", err)
		hasToken = false
	}

	for attempt := 0; ; attempt++ {
		status, body, err := c.send(ctx, req, payload, token, hasToken)
		if err == nil {
			return c.handle(ctx, req, status, body, attempt+1, out)
		}
		if errors.Is(err, ErrInvalidRequest) {
			return err
		}

		if ctx.Err() != nil || attempt >= c.maxRetries {
			c.requests.Inc(ctx, "method", req.Method, "outcome", KindNetwork.String())
			if cerr := ctx.Err(); cerr != nil {
				err = cerr
			}
			return &Error{Kind: KindNetwork, Message: NetworkMessage, Attempts: attempt + 1, Err: err}
		}

		delay := c.backoff(attempt + 1)
		c.retries.Inc(ctx, "method", req.Method)
		c.log.WarnContext(ctx, "gateway: transport failure, retrying",
			"method", req.Method,
			"path", req.Path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"next_delay", delay,
			"error", err,
		)
		if werr := c.wait(ctx, delay); werr != nil {
			c.requests.Inc(ctx, "method", req.Method, "outcome", KindNetwork.String())
			return &Error{Kind: KindNetwork, Message: NetworkMessage, Attempts: attempt + 1, Err: werr}
		}
	}
}

// send performs one attempt. A non-nil error means no response was received.
func (c *Client) send(ctx context.Context, req Request, payload []byte, token string, hasToken bool) (int, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	hr, err := http.NewRequestWithContext(attemptCtx, req.Method, c.url(req), body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}
	hr.Header.Set("Accept", "application/json")
	if payload != nil {
		hr.Header.Set("Content-Type", "application/json")
	}
	if req.IdempotencyKey != "" {
		hr.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}
	if hasToken {
		hr.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(hr)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("gateway: read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func (c *Client) handle(ctx context.Context, req Request, status int, body []byte, attempts int, out any) error {
	switch {
	case status == http.StatusUnauthorized:
		c.requests.Inc(ctx, "method", req.Method, "outcome", KindUnauthorized.String())
		if err := c.creds.Clear(ctx); err != nil {
			c.log.ErrorContext(ctx, "gateway: failed to clear session", "error", err)
		}
		c.log.InfoContext(ctx, "gateway: session invalidated", "method", req.Method, "path", req.Path)
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return &Error{
			Kind:     KindUnauthorized,
			Status:   status,
			Message:  serverMessage(body, UnauthorizedMessage),
			Attempts: attempts,
		}

	case status < 200 || status > 299:
		c.requests.Inc(ctx, "method", req.Method, "outcome", KindServer.String())
		return &Error{
			Kind:     KindServer,
			Status:   status,
			Message:  serverMessage(body, ServerMessage),
			Attempts: attempts,
		}
	}

	c.requests.Inc(ctx, "method", req.Method, "outcome", "ok")
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindServer, Status: status, Message: ServerMessage, Attempts: attempts,
			Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// backoff returns the delay before retry n (1-based): base, 2*base, 4*base...
func (c *Client) backoff(n int) time.Duration {
	return c.retryBase << (n - 1)
}

func (c *Client) url(req Request) string {
	path := req.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}
	return u
}

// serverMessage extracts the "message" field of an error body.
func serverMessage(body []byte, fallback string) string {
	if !gjson.ValidBytes(body) {
		return fallback
	}
	if msg := gjson.GetBytes(body, "message").String(); msg != "" {
		return msg
	}
	return fallback
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
