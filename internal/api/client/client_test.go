package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/auction-monitor/pkg/stats"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.Summary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auction-monitor not running")
}

func TestClient_ProblemDetail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"title":"Service Unavailable","status":503,"detail":"no auction summary computed yet"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Summary(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "no auction summary computed yet", apiErr.Detail)
	assert.Equal(t, "API error (HTTP 503): no auction summary computed yet", err.Error())
}

func TestClient_PlainErrorBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).TriggerRun(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500): internal")
}

func TestClient_Summary(t *testing.T) {
	t.Parallel()

	computed := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/summary", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Summary{
			Summary: stats.Summary{
				AuctionCount:    3,
				TotalBids:       12,
				AverageBids:     4,
				AverageProgress: 25,
				ComputedAt:      computed,
			},
			LastError: "fetching auctions: timeout",
		})
	}))
	defer srv.Close()

	s, err := New(srv.URL + "/").Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, s.AuctionCount)
	assert.InDelta(t, 25.0, s.AverageProgress, 0.0001)
	assert.True(t, computed.Equal(s.ComputedAt))
	assert.Equal(t, "fetching auctions: timeout", s.LastError)
}

func TestClient_TriggerRun(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/run", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"auction_count":2,"total_bids":8,"average_bids":4,"average_progress":10,"computed_at":"2026-10-14T09:30:00Z"}`))
	}))
	defer srv.Close()

	hc := &http.Client{Timeout: 5 * time.Second}
	s, err := New(srv.URL, WithHTTPClient(hc)).TriggerRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.AuctionCount)
	assert.Empty(t, s.LastError)
}
