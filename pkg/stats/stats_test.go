package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/auction-monitor/pkg/types"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		auctions     []domain.Auction
		wantCount    int
		wantBids     float64
		wantProgress float64
	}{
		{
			name:         "empty listing",
			auctions:     nil,
			wantCount:    0,
			wantBids:     0,
			wantProgress: 0,
		},
		{
			name: "two auctions average four bids",
			auctions: []domain.Auction{
				{NumBids: 3, MinimumRequiredAsk: 1000, CurrentHighestBidValue: 500},
				{NumBids: 5, MinimumRequiredAsk: 2000, CurrentHighestBidValue: 1500},
			},
			wantCount:    2,
			wantBids:     4.0,
			wantProgress: 25.0,
		},
		{
			name: "single auction without bids",
			auctions: []domain.Auction{
				{MinimumRequiredAsk: 300},
			},
			wantCount:    1,
			wantBids:     0,
			wantProgress: 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Summarize(tt.auctions, now)
			assert.Equal(t, tt.wantCount, got.AuctionCount)
			assert.InDelta(t, tt.wantBids, got.AverageBids, 0.0001)
			assert.InDelta(t, tt.wantProgress, got.AverageProgress, 0.0001)
			assert.Equal(t, now, got.ComputedAt)
		})
	}
}
