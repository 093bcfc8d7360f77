package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// AuctionCount returns a stat panel showing the size of the latest listing.
func AuctionCount() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Auctions").
		Description("Buyer auctions in the latest listing").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(8).
		WithTarget(PromQuery(Selector("auction_monitor_auctions"), "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// AverageBids returns a stat panel showing the mean bid count per auction.
func AverageBids() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Average Bids").
		Description("Mean number of bids per auction in the latest listing").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(8).
		WithTarget(PromQuery(Selector("auction_monitor_average_bids"), "", "A")).
		Unit("none").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// AverageProgress returns a gauge panel showing how far, on average, the
// highest bids are towards the minimum required ask.
func AverageProgress() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("Average Progress %").
		Description("Mean highest bid as a percentage of the minimum required ask").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(8).
		WithTarget(PromQuery(Selector("auction_monitor_average_progress"), "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsRedGreen(50)).
		ColorScheme(ColorSchemeThresholds())
}

// RunOutcomes returns a timeseries panel showing monitor runs per hour by
// result.
func RunOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Runs / hour").
		Description("Monitor runs per hour by result").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`auction_monitor:monitor_runs:rate5m * 3600`, "{{result}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RunDuration returns a timeseries panel showing the p95 monitor run
// duration.
func RunDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Run Duration (p95)").
		Description("95th percentile duration of a full fetch-and-summarize run").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(P95("auction_monitor_monitor_run_duration_seconds"), "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
