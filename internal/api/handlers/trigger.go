package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/auction-monitor/internal/gateway"
	"github.com/donaldgifford/auction-monitor/pkg/stats"
)

// Runner defines the interface for triggering a monitor run.
type Runner interface {
	RunOnce(ctx context.Context) (*stats.Summary, error)
}

// RunHandler handles manual run trigger requests.
type RunHandler struct {
	runner Runner
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(r Runner) *RunHandler {
	return &RunHandler{runner: r}
}

// Run fetches the auction listing now and returns the fresh summary.
func (h *RunHandler) Run(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	s, err := h.runner.RunOnce(ctx)
	if err != nil {
		return nil, runError(err)
	}
	return &SummaryOutput{Body: newSummaryBody(s)}, nil
}

// runError maps gateway failures onto gateway-flavored HTTP statuses.
func runError(err error) error {
	var te *gateway.TransportError
	if errors.As(err, &te) && te.Timeout() {
		return huma.Error504GatewayTimeout("run failed: " + err.Error())
	}

	var (
		ae *gateway.AuthError
		ue *gateway.UpstreamError
	)
	if errors.As(err, &ae) || errors.As(err, &ue) || te != nil {
		return huma.Error502BadGateway("run failed: " + err.Error())
	}

	return huma.Error500InternalServerError("run failed: " + err.Error())
}

// RegisterRunRoutes registers the run trigger endpoint with the Huma API.
func RegisterRunRoutes(api huma.API, h *RunHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-run",
		Method:      http.MethodPost,
		Path:        "/api/v1/run",
		Summary:     "Trigger a monitor run",
		Description: "Fetches the running auctions from the marketplace, " +
			"recomputes the summary, and returns it.",
		Tags: []string{"auctions"},
		Errors: []int{
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusGatewayTimeout,
		},
	}, h.Run)
}
