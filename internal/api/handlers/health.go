package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/auction-monitor/pkg/stats"
)

// SummarySource exposes the monitor's most recent results.
type SummarySource interface {
	Latest() (*stats.Summary, bool)
	LastError() error
}

// ProbeResponse is the body of the probe endpoints. Reason carries the last
// run error while the monitor is not ready.
type ProbeResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	source SummarySource
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s SummarySource) *HealthHandler {
	return &HealthHandler{source: s}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, ProbeResponse{Status: "ok"})
}

// Readyz returns 200 once the monitor has produced a summary, 503 before.
// A later failed run does not flip readiness back.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if _, ok := h.source.Latest(); !ok {
		resp := ProbeResponse{Status: "unavailable"}
		if err := h.source.LastError(); err != nil {
			resp.Reason = err.Error()
		}
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return c.JSON(http.StatusOK, ProbeResponse{Status: "ready"})
}
