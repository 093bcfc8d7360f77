// Package stats aggregates buyer auction listings into summary statistics.
package stats

import (
	"time"

	domain "github.com/donaldgifford/auction-monitor/pkg/types"
)

// progressScale converts the averaged ask+bid sum into the reported
// progress percentage.
const progressScale = 0.01

// Summary holds the aggregated view of one auction listing.
type Summary struct {
	AuctionCount    int       `json:"auction_count"`
	TotalBids       int       `json:"total_bids"`
	AverageBids     float64   `json:"average_bids"`
	AverageProgress float64   `json:"average_progress"`
	ComputedAt      time.Time `json:"computed_at"`
}

// Summarize computes the summary for the given auctions. An empty slice
// yields a zero summary stamped with now.
func Summarize(auctions []domain.Auction, now time.Time) Summary {
	s := Summary{
		AuctionCount: len(auctions),
		ComputedAt:   now,
	}

	var progress float64
	for i := range auctions {
		s.TotalBids += auctions[i].NumBids
		progress += auctions[i].MinimumRequiredAsk + auctions[i].CurrentHighestBidValue
	}

	divisor := float64(max(s.AuctionCount, 1))
	s.AverageBids = float64(s.TotalBids) / divisor
	s.AverageProgress = progress / divisor * progressScale

	return s
}
