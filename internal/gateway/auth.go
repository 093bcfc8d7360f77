package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const authPath = "/v1/authentication/"

// Authenticator performs the login exchange for an identity and secret.
type Authenticator interface {
	Authenticate(ctx context.Context, identity, secret string) (Credentials, error)
}

// LoginAuthenticator implements Authenticator against the marketplace login
// endpoint: PUT {baseURL}/v1/authentication/{identity} with {"password": secret}.
// It has no side effects; callers store the returned credentials.
type LoginAuthenticator struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// LoginOption configures the LoginAuthenticator.
type LoginOption func(*LoginAuthenticator)

// WithLoginHTTPClient overrides the default HTTP client.
func WithLoginHTTPClient(c *http.Client) LoginOption {
	return func(a *LoginAuthenticator) {
		a.client = c
	}
}

// WithLoginLogger sets the logger used for login diagnostics.
func WithLoginLogger(l *slog.Logger) LoginOption {
	return func(a *LoginAuthenticator) {
		a.log = l
	}
}

// NewLoginAuthenticator creates a login authenticator for the given base URL.
func NewLoginAuthenticator(baseURL string, opts ...LoginOption) *LoginAuthenticator {
	a := &LoginAuthenticator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(10 * time.Second),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type loginRequest struct {
	Password string `json:"password"`
}

// Authenticate exchanges identity and secret for credentials. Every failure
// is returned as an *AuthError; when no response was received it wraps a
// *TransportError.
func (a *LoginAuthenticator) Authenticate(
	ctx context.Context,
	identity, secret string,
) (Credentials, error) {
	payload, err := json.Marshal(loginRequest{Password: secret})
	if err != nil {
		return Credentials{}, &AuthError{Message: "encoding login request", Err: err}
	}

	u := a.baseURL + authPath + url.PathEscape(identity)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(payload))
	if err != nil {
		return Credentials{}, &AuthError{Message: "creating login request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set(HeaderRequestID, id)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.log.ErrorContext(ctx, "login request failed", "identity", identity, "error", err)
		return Credentials{}, &AuthError{
			Message: fmt.Sprintf("executing login request: %v", err),
			Err: &TransportError{
				Request: http.MethodPut + " " + u,
				Message: err.Error(),
				Err:     err,
			},
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Credentials{}, &AuthError{
			Status:  resp.StatusCode,
			Message: "reading login response",
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := upstreamMessage(resp.StatusCode, body)
		a.log.ErrorContext(ctx, "login rejected",
			"identity", identity,
			"status", resp.StatusCode,
			"error", msg,
		)
		return Credentials{}, &AuthError{Status: resp.StatusCode, Message: msg}
	}

	var creds Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		return Credentials{}, &AuthError{
			Status:  resp.StatusCode,
			Message: "parsing login response",
			Err:     err,
		}
	}

	if !creds.Valid() {
		return Credentials{}, &AuthError{
			Status:  resp.StatusCode,
			Message: "login response missing token or userId",
		}
	}

	a.log.InfoContext(ctx, "login succeeded, saving token for future requests",
		"status", resp.StatusCode,
		"user_id", creds.UserID,
	)

	return creds, nil
}
