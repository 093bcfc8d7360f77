package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// HealthzStat returns a stat panel showing the liveness probe status.
func HealthzStat() *stat.PanelBuilder {
	return probeStat("Healthz", "Liveness probe status (1 = ok, 0 = failing)",
		"auction_monitor_healthz_up")
}

// ReadyzStat returns a stat panel showing the readiness probe status.
// Readiness flips to 1 after the first successful monitor run.
func ReadyzStat() *stat.PanelBuilder {
	return probeStat("Readyz", "Readiness probe status (1 = summary available, 0 = not ready)",
		"auction_monitor_readyz_up")
}

func probeStat(title, description, metric string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(Selector(metric), "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// LastSuccessStat returns a stat panel showing the time since the last
// successful monitor run.
func LastSuccessStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Last Successful Run").
		Description("Time since the monitor last fetched and summarized the listing").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			"time() - "+Selector("auction_monitor_last_success_timestamp"),
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(900, 3600)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since process start").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery("time() - "+Selector("process_start_time_seconds"), "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
