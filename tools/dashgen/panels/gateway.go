package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// UpstreamRequests returns a timeseries panel showing marketplace calls per
// second split by response status. Status 0 means no response arrived.
func UpstreamRequests() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Upstream Requests").
		Description("Marketplace calls per second by status code (0 = transport failure)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`auction_monitor:gateway_requests:rate5m`, "{{status}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// UpstreamLatency returns a timeseries panel showing p95 marketplace latency
// per method.
func UpstreamLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Upstream Latency (p95)").
		Description("95th percentile marketplace call duration by method").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(P95("auction_monitor_gateway_request_duration_seconds", "method"), "{{method}}", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// GatewayErrors returns a timeseries panel showing normalized gateway errors
// per minute by kind.
func GatewayErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Gateway Errors / min").
		Description("Auth, upstream and transport errors per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`auction_monitor:gateway_errors:rate5m * 60`, "{{kind}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LoginFailures returns a stat panel showing failed login exchanges in the
// past 24 hours.
func LoginFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Login Failures (24h)").
		Description("Rejected or failed credential exchanges in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			"sum(increase("+Selector("auction_monitor_gateway_authentications_total", `result="failure"`)+"[24h]))",
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// CacheInvalidations returns a stat panel showing how often cached
// credentials were dropped after a 401 in the past 24 hours.
func CacheInvalidations() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Token Invalidations (24h)").
		Description("Cached credentials cleared after the marketplace answered 401").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			"sum(increase("+Selector("auction_monitor_gateway_cache_invalidations_total")+"[24h]))",
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(5, 20)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
