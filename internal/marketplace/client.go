// Package marketplace provides typed access to the marketplace buyer API
// on top of the authenticated gateway.
package marketplace

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/donaldgifford/auction-monitor/pkg/types"
)

// runningAuctionsPath lists the buyer's auctions with an empty filter and
// without the count-only mode.
const runningAuctionsPath = `/v2/auction/buyer/?filter=%22%22&count=false`

// Getter performs an authenticated GET and decodes the JSON body into dst.
type Getter interface {
	Get(ctx context.Context, url string, dst any) error
}

// Client reads buyer auctions from the marketplace.
type Client struct {
	gw      Getter
	baseURL string
}

// New creates a marketplace client that resolves paths against baseURL.
func New(gw Getter, baseURL string) *Client {
	return &Client{
		gw:      gw,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// RunningAuctionsURL returns the resolved buyer auction listing URL.
func (c *Client) RunningAuctionsURL() string {
	return c.baseURL + runningAuctionsPath
}

// RunningAuctions fetches the buyer's auction listing. Gateway errors are
// wrapped and remain inspectable with errors.As.
func (c *Client) RunningAuctions(ctx context.Context) (*domain.BuyerAuctions, error) {
	var listing domain.BuyerAuctions
	if err := c.gw.Get(ctx, c.RunningAuctionsURL(), &listing); err != nil {
		return nil, fmt.Errorf("fetching running auctions: %w", err)
	}
	return &listing, nil
}
