package client

import (
	"context"

	"github.com/donaldgifford/auction-monitor/pkg/stats"
)

// Summary is the summary endpoint payload.
type Summary struct {
	stats.Summary
	LastError string `json:"last_error,omitempty"`
}

// Summary returns the latest summary held by a running watch process. It
// fails with a 503 APIError until the first run has succeeded.
func (c *Client) Summary(ctx context.Context) (*Summary, error) {
	var s Summary
	if err := c.get(ctx, "/api/v1/summary", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// TriggerRun asks the watch process to fetch the listing now and returns
// the fresh summary.
func (c *Client) TriggerRun(ctx context.Context) (*Summary, error) {
	var s Summary
	if err := c.post(ctx, "/api/v1/run", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
