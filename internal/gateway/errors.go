package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/donaldgifford/auction-monitor/internal/metrics"
)

// ErrUnauthorized matches any UpstreamError carrying HTTP 401 via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// maxMessageLen bounds the upstream body text copied into error messages.
const maxMessageLen = 512

// AuthError reports that the login exchange itself failed: bad credentials,
// a non-2xx status, a malformed body, or no response at all.
type AuthError struct {
	Status  int // 0 when no response was received
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("authentication failed (status %d): %s", e.Status, e.Message)
	}
	return "authentication failed: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamError reports that the upstream API answered an authenticated
// request with a non-2xx status, or with a body that could not be decoded.
type UpstreamError struct {
	Request string
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream error (status %d): %s", e.Request, e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is reports whether target is ErrUnauthorized and the status is 401.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// TransportError reports that no upstream response was obtained: network
// failure, DNS failure, timeout, cancellation or rate limiter refusal.
type TransportError struct {
	Request string
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %s", e.Request, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline or client timeout.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// IsAuthError reports whether err is or wraps an *AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// StatusCode returns the upstream status carried by err, or 0.
func StatusCode(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Status
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// upstreamResponse is the part of a failed response the classifier needs.
type upstreamResponse struct {
	status int
	body   []byte
}

// classify turns a failed call into a normalized error. A nil resp means no
// response was received. A 401 clears the credential cache if it still holds
// token, the one the call was sent with, so the next call re-authenticates;
// the failed call itself is not retried.
func (c *Client) classify(
	ctx context.Context,
	request, token string,
	resp *upstreamResponse,
	err error,
) error {
	if resp == nil {
		msg := "request failed"
		if err != nil {
			msg = err.Error()
		}
		c.log.ErrorContext(ctx, "upstream request failed",
			"request", request,
			"error", msg,
		)
		metrics.GatewayErrorsTotal.WithLabelValues("transport").Inc()
		return &TransportError{Request: request, Message: msg, Err: err}
	}

	msg := upstreamMessage(resp.status, resp.body)

	if resp.status == http.StatusUnauthorized {
		if c.cache.ClearToken(token) {
			metrics.GatewayCacheInvalidationsTotal.Inc()
			c.log.WarnContext(ctx, "credentials rejected, cleared cached token", "request", request)
		} else {
			c.log.DebugContext(ctx, "stale token rejected, cached credentials already replaced",
				"request", request)
		}
	}

	c.log.ErrorContext(ctx, "upstream request rejected",
		"request", request,
		"status", resp.status,
		"body", truncate(string(resp.body), maxMessageLen),
		"error", msg,
	)
	metrics.GatewayErrorsTotal.WithLabelValues("upstream").Inc()

	return &UpstreamError{Request: request, Status: resp.status, Message: msg, Err: err}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// upstreamMessage extracts a human-readable message from an error body,
// preferring a JSON "message" or "error" field, then trimmed raw text,
// then the status text.
func upstreamMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return truncate(text, maxMessageLen)
	}

	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
