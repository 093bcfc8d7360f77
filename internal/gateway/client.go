// Package gateway implements the authenticated HTTP gateway to the
// marketplace API. It caches login credentials per Client, attaches them to
// every request, clears them when the upstream rejects the token, and
// normalizes failures into AuthError, UpstreamError and TransportError.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/auction-monitor/internal/metrics"
)

// Upstream header names for the cached credentials.
const (
	HeaderAuthToken = "authToken"
	HeaderUserID    = "userid"
	HeaderRequestID = "X-Request-ID"
)

const (
	defaultTimeout = 30 * time.Second
	maxLoggedBody  = 2048
)

// Client dispatches authenticated requests to the marketplace API.
// Safe for concurrent use; concurrent callers share one authentication.
type Client struct {
	identity string
	secret   string

	auth        Authenticator
	cache       *CredentialCache
	client      *http.Client
	rateLimiter *RateLimiter
	log         *slog.Logger

	flight singleflight.Group
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. Its timeout bounds both
// login and data calls unless a custom Authenticator is supplied.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client = newHTTPClient(d)
	}
}

// WithAuthenticator overrides the default login authenticator.
func WithAuthenticator(a Authenticator) Option {
	return func(c *Client) {
		c.auth = a
	}
}

// WithCredentialCache injects a credential cache, e.g. one pre-populated in tests.
func WithCredentialCache(cc *CredentialCache) Option {
	return func(c *Client) {
		c.cache = cc
	}
}

// WithRateLimiter paces every data request through r.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithLogger sets the logger for request and error diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a gateway client that logs in with identity and secret
// against baseURL on first use.
func New(baseURL, identity, secret string, opts ...Option) *Client {
	c := &Client{
		identity: identity,
		secret:   secret,
		cache:    NewCredentialCache(),
		client:   newHTTPClient(defaultTimeout),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.auth == nil {
		c.auth = NewLoginAuthenticator(
			baseURL,
			WithLoginHTTPClient(c.client),
			WithLoginLogger(c.log),
		)
	}
	return c
}

// newHTTPClient returns a client whose transport records a span for each
// upstream call against the global tracer provider.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// Cache returns the client's credential cache.
func (c *Client) Cache() *CredentialCache {
	return c.cache
}

// Get performs an authenticated GET and decodes the JSON body into dst.
func (c *Client) Get(ctx context.Context, url string, dst any) error {
	return c.do(ctx, http.MethodGet, url, nil, dst)
}

// Post performs an authenticated POST with a JSON body and decodes the
// response into dst.
func (c *Client) Post(ctx context.Context, url string, body, dst any) error {
	return c.do(ctx, http.MethodPost, url, body, dst)
}

// Put performs an authenticated PUT with a JSON body and decodes the
// response into dst.
func (c *Client) Put(ctx context.Context, url string, body, dst any) error {
	return c.do(ctx, http.MethodPut, url, body, dst)
}

// ensureAuthenticated returns cached credentials, logging in first when the
// cache is empty. Concurrent callers wait on a single login. The login is
// detached from the cancellation of whichever caller started it, so one
// caller giving up does not fail the others; each caller stops waiting when
// its own ctx is done. The HTTP client timeout bounds the login itself.
func (c *Client) ensureAuthenticated(ctx context.Context) (Credentials, error) {
	if creds, ok := c.cache.Get(); ok {
		return creds, nil
	}

	loginCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan("authenticate", func() (any, error) {
		if creds, ok := c.cache.Get(); ok {
			return creds, nil
		}

		c.log.DebugContext(loginCtx, "no cached credentials, authenticating")

		creds, err := c.auth.Authenticate(loginCtx, c.identity, c.secret)
		if err != nil {
			metrics.GatewayAuthenticationsTotal.WithLabelValues("failure").Inc()
			metrics.GatewayErrorsTotal.WithLabelValues("auth").Inc()
			return Credentials{}, err
		}
		if !creds.Valid() {
			metrics.GatewayAuthenticationsTotal.WithLabelValues("failure").Inc()
			metrics.GatewayErrorsTotal.WithLabelValues("auth").Inc()
			return Credentials{}, &AuthError{Message: "authenticator returned incomplete credentials"}
		}

		metrics.GatewayAuthenticationsTotal.WithLabelValues("success").Inc()
		c.cache.Set(creds)
		return creds, nil
	})

	select {
	case <-ctx.Done():
		err := ctx.Err()
		c.log.ErrorContext(ctx, "gave up waiting for login", "error", err)
		return Credentials{}, &AuthError{
			Message: "waiting for login: " + err.Error(),
			Err:     &TransportError{Request: "login", Message: err.Error(), Err: err},
		}
	case res := <-ch:
		if res.Err != nil {
			err := res.Err
			var ae *AuthError
			if !errors.As(err, &ae) {
				err = &AuthError{Message: err.Error(), Err: err}
			}
			return Credentials{}, err
		}
		creds, _ := res.Val.(Credentials) //nolint:errcheck // flight only returns Credentials
		return creds, nil
	}
}

func (c *Client) do(ctx context.Context, method, target string, body, dst any) error {
	request := method + " " + target

	creds, err := c.ensureAuthenticated(ctx)
	if err != nil {
		return err
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return c.classify(ctx, request, creds.Token, nil, err)
		}
	}

	bodyReader := io.Reader(http.NoBody)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("marshaling request body: %w", err)
			return c.classify(ctx, request, creds.Token, nil, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		err = fmt.Errorf("creating request: %w", err)
		return c.classify(ctx, request, creds.Token, nil, err)
	}

	reqID := RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set(HeaderAuthToken, creds.Token)
	req.Header.Set(HeaderUserID, creds.UserID)
	req.Header.Set(HeaderRequestID, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.GatewayRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(method, "0").Inc()
		return c.classify(ctx, request, creds.Token, nil, err)
	}
	defer resp.Body.Close()

	metrics.GatewayRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("reading response body: %w", err)
		return c.classify(ctx, request, creds.Token, nil, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classify(ctx, request, creds.Token, &upstreamResponse{
			status: resp.StatusCode,
			body:   respBody,
		}, nil)
	}

	c.log.DebugContext(ctx, "upstream request succeeded",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", reqID,
		"headers", resp.Header,
		"body", truncate(string(respBody), maxLoggedBody),
	)

	if dst == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, dst); err != nil {
		metrics.GatewayErrorsTotal.WithLabelValues("upstream").Inc()
		c.log.ErrorContext(ctx, "decoding upstream response failed",
			"request", request,
			"status", resp.StatusCode,
			"error", err,
		)
		return &UpstreamError{
			Request: request,
			Status:  resp.StatusCode,
			Message: "decoding response: " + err.Error(),
			Err:     err,
		}
	}

	return nil
}
