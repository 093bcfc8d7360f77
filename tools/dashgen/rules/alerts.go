package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// auction-monitor operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata:   metadata("auction-monitor-alerts"),
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "auction-monitor-alerts",
					Rules: []Rule{
						{
							Alert:  "AuctionMonitorDown",
							Expr:   `absent(up{job="auction-monitor"})`,
							For:    "2m",
							Labels: severity("critical"),
							Annotations: map[string]string{
								"summary":     "Auction Monitor is down",
								"description": "The auction-monitor job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert:  "AuctionMonitorNotReady",
							Expr:   `auction_monitor_readyz_up == 0`,
							For:    "10m",
							Labels: severity("critical"),
							Annotations: map[string]string{
								"summary":     "Auction Monitor has no summary to serve",
								"description": "No monitor run has succeeded since startup for more than 10 minutes.",
							},
						},
						{
							Alert:  "AuctionMonitorStale",
							Expr:   `time() - auction_monitor_last_success_timestamp > 3600`,
							For:    "5m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "Auction summary is stale",
								"description": "The last successful monitor run is more than an hour old.",
							},
						},
						{
							Alert:  "AuctionMonitorLoginFailing",
							Expr:   `increase(auction_monitor_gateway_authentications_total{result="failure"}[15m]) > 0`,
							For:    "0m",
							Labels: severity("critical"),
							Annotations: map[string]string{
								"summary":     "Marketplace login is failing",
								"description": "The credential exchange was rejected or failed in the last 15 minutes. Check the configured email and password.",
							},
						},
						{
							Alert:  "AuctionMonitorTransportErrors",
							Expr:   `auction_monitor:gateway_errors:rate5m{kind="transport"} > 0`,
							For:    "10m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "Marketplace is unreachable",
								"description": "Gateway calls have been failing without a response for more than 10 minutes.",
							},
						},
						{
							Alert:  "AuctionMonitorHighErrorRate",
							Expr:   `auction_monitor:http_errors:rate5m / auction_monitor:http_requests:rate5m > 0.05`,
							For:    "5m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Auction Monitor",
								"description": "More than 5% of API requests are returning 5xx errors over the last 5 minutes.",
							},
						},
					},
				},
			},
		},
	}
}

func severity(level string) map[string]string {
	return map[string]string{"severity": level}
}
