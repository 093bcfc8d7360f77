package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "json message field", status: 400, body: `{"message":"bad filter"}`, want: "bad filter"},
		{name: "json error field", status: 403, body: `{"error":"forbidden"}`, want: "forbidden"},
		{name: "plain text is trimmed", status: 502, body: "  bad gateway\n", want: "bad gateway"},
		{name: "json without message falls back to raw", status: 500, body: `{"code":7}`, want: `{"code":7}`},
		{name: "empty body uses status text", status: 503, body: "", want: "Service Unavailable"},
		{name: "unknown status", status: 599, body: "", want: "status 599"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, upstreamMessage(tt.status, []byte(tt.body)))
		})
	}
}

func TestUpstreamMessage_TruncatesLongBodies(t *testing.T) {
	t.Parallel()

	got := upstreamMessage(500, []byte(strings.Repeat("x", 2*maxMessageLen)))
	assert.Len(t, got, maxMessageLen)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestErrorTypes(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name        string
		err         error
		wantMessage string
		wantStatus  int
		wantAuth    bool
		wantUnauth  bool
	}{
		{
			name:        "auth error with status",
			err:         &AuthError{Status: 401, Message: "invalid password"},
			wantMessage: "authentication failed (status 401): invalid password",
			wantStatus:  401,
			wantAuth:    true,
		},
		{
			name:        "auth error without response",
			err:         &AuthError{Message: "executing login request", Err: cause},
			wantMessage: "authentication failed: executing login request",
			wantAuth:    true,
		},
		{
			name:        "upstream 401",
			err:         &UpstreamError{Request: "GET /x", Status: 401, Message: "expired"},
			wantMessage: "GET /x: upstream error (status 401): expired",
			wantStatus:  401,
			wantUnauth:  true,
		},
		{
			name:        "wrapped upstream 500",
			err:         fmt.Errorf("fetching auctions: %w", &UpstreamError{Request: "GET /x", Status: 500, Message: "boom"}),
			wantMessage: "fetching auctions: GET /x: upstream error (status 500): boom",
			wantStatus:  500,
		},
		{
			name:        "transport error",
			err:         &TransportError{Request: "GET /x", Message: cause.Error(), Err: cause},
			wantMessage: "GET /x: transport error: dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantMessage, tt.err.Error())
			assert.Equal(t, tt.wantStatus, StatusCode(tt.err))
			assert.Equal(t, tt.wantAuth, IsAuthError(tt.err))
			assert.Equal(t, tt.wantUnauth, errors.Is(tt.err, ErrUnauthorized))
		})
	}
}

func TestTransportError_Timeout(t *testing.T) {
	t.Parallel()

	assert.True(t, (&TransportError{Err: context.DeadlineExceeded}).Timeout())
	assert.True(t, (&TransportError{Err: fmt.Errorf("wait: %w", context.DeadlineExceeded)}).Timeout())
	assert.False(t, (&TransportError{Err: context.Canceled}).Timeout())
	assert.False(t, (&TransportError{}).Timeout())
}

func TestClassify_AlwaysReturnsError(t *testing.T) {
	t.Parallel()

	c := New("http://upstream.invalid", "id", "pw")
	c.cache.Set(Credentials{Token: "tok", UserID: "id"})

	err := c.classify(context.Background(), "GET /x", "tok", nil, nil)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "request failed", te.Message)

	err = c.classify(context.Background(), "GET /x", "tok", &upstreamResponse{status: http.StatusBadRequest}, nil)
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadRequest, ue.Status)

	_, ok := c.cache.Get()
	assert.True(t, ok, "non-401 must not clear the cache")

	err = c.classify(context.Background(), "GET /x", "tok", &upstreamResponse{status: http.StatusUnauthorized}, nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, ok = c.cache.Get()
	assert.False(t, ok, "401 must clear the cache")
}

func TestClassify_UnauthorizedKeepsNewerCredentials(t *testing.T) {
	t.Parallel()

	c := New("http://upstream.invalid", "id", "pw")
	fresh := Credentials{Token: "fresh", UserID: "id"}
	c.cache.Set(fresh)

	err := c.classify(context.Background(), "GET /x", "stale", &upstreamResponse{status: http.StatusUnauthorized}, nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	got, ok := c.cache.Get()
	assert.True(t, ok, "a 401 for an older token must not clear newer credentials")
	assert.Equal(t, fresh, got)
}
