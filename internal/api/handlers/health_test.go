package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/auction-monitor/internal/api/handlers"
	"github.com/donaldgifford/auction-monitor/pkg/stats"
)

// stubSource implements handlers.SummarySource.
type stubSource struct {
	latest  *stats.Summary
	lastErr error
}

func (s *stubSource) Latest() (*stats.Summary, bool) {
	if s.latest == nil {
		return nil, false
	}
	c := *s.latest
	return &c, true
}

func (s *stubSource) LastError() error { return s.lastErr }

var sampleSummary = &stats.Summary{
	AuctionCount:    2,
	TotalBids:       8,
	AverageBids:     4,
	AverageProgress: 25,
	ComputedAt:      time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(&stubSource{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Healthz(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		source     *stubSource
		wantStatus int
		wantBody   string
	}{
		{
			name:       "returns 200 after a successful run",
			source:     &stubSource{latest: sampleSummary},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready"}`,
		},
		{
			name:       "returns 503 before the first run",
			source:     &stubSource{},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unavailable"}`,
		},
		{
			name:       "503 carries the failure reason",
			source:     &stubSource{lastErr: errors.New("authenticating: status 403")},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"unavailable","reason":"authenticating: status 403"}`,
		},
		{
			name:       "stays ready after a later failure",
			source:     &stubSource{latest: sampleSummary, lastErr: errors.New("timeout")},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := handlers.NewHealthHandler(tt.source)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, h.Readyz(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
