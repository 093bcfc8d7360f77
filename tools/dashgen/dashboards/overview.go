// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/auction-monitor/tools/dashgen/panels"
)

// UID is the stable dashboard identifier used for provisioning.
const UID = "auction-monitor-overview"

// BuildOverview constructs the Auction Monitor overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Auction Monitor").
		Uid(UID).
		Tags([]string{"auction-monitor", "marketplace"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.LastSuccessStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("Auctions").
		WithPanel(panels.AuctionCount()).
		WithPanel(panels.AverageBids()).
		WithPanel(panels.AverageProgress()).
		WithPanel(panels.RunOutcomes()).
		WithPanel(panels.RunDuration()))

	b.WithRow(dashboard.NewRowBuilder("Marketplace Gateway").
		WithPanel(panels.UpstreamRequests()).
		WithPanel(panels.UpstreamLatency()).
		WithPanel(panels.GatewayErrors()).
		WithPanel(panels.LoginFailures()).
		WithPanel(panels.CacheInvalidations()))

	b.WithRow(dashboard.NewRowBuilder("HTTP API").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
