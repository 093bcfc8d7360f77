package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/auction-monitor/pkg/stats"
)

// SummaryHandler serves the latest auction summary.
type SummaryHandler struct {
	source SummarySource
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(s SummarySource) *SummaryHandler {
	return &SummaryHandler{source: s}
}

// SummaryBody is the JSON representation of an auction summary.
type SummaryBody struct {
	AuctionCount    int       `json:"auction_count"              example:"12"                   doc:"Number of running auctions in the listing"`
	TotalBids       int       `json:"total_bids"                 example:"48"                   doc:"Sum of bid counts across auctions"`
	AverageBids     float64   `json:"average_bids"               example:"4"                    doc:"Mean number of bids per auction"`
	AverageProgress float64   `json:"average_progress"           example:"25.5"                 doc:"Mean of minimum ask plus highest bid, scaled by 0.01"`
	ComputedAt      time.Time `json:"computed_at"                example:"2026-10-14T09:30:00Z" doc:"When the summary was computed"`
	LastError       string    `json:"last_error,omitempty"       example:""                     doc:"Error of the latest run when it failed after an earlier success"`
}

// SummaryOutput is the response for the summary endpoint.
type SummaryOutput struct {
	Body SummaryBody
}

func newSummaryBody(s *stats.Summary) SummaryBody {
	return SummaryBody{
		AuctionCount:    s.AuctionCount,
		TotalBids:       s.TotalBids,
		AverageBids:     s.AverageBids,
		AverageProgress: s.AverageProgress,
		ComputedAt:      s.ComputedAt,
	}
}

// GetSummary returns the most recent successful summary. It responds 503
// until the first run has succeeded.
func (h *SummaryHandler) GetSummary(_ context.Context, _ *struct{}) (*SummaryOutput, error) {
	s, ok := h.source.Latest()
	if !ok {
		msg := "no auction summary computed yet"
		if err := h.source.LastError(); err != nil {
			msg += ": " + err.Error()
		}
		return nil, huma.Error503ServiceUnavailable(msg)
	}

	resp := &SummaryOutput{Body: newSummaryBody(s)}
	if err := h.source.LastError(); err != nil {
		resp.Body.LastError = err.Error()
	}
	return resp, nil
}

// RegisterSummaryRoutes registers the summary endpoint with the Huma API.
func RegisterSummaryRoutes(api huma.API, h *SummaryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/api/v1/summary",
		Summary:     "Get latest auction summary",
		Description: "Returns the auction count, average bids and average progress from the latest successful run.",
		Tags:        []string{"auctions"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.GetSummary)
}
