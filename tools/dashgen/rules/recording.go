package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata:   metadata("auction-monitor-recording-rules"),
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "auction-monitor-recording",
					Rules: []Rule{
						{
							Record: "auction_monitor:http_requests:rate5m",
							Expr:   `sum(rate(auction_monitor_http_requests_total[5m]))`,
						},
						{
							Record: "auction_monitor:http_errors:rate5m",
							Expr:   `sum(rate(auction_monitor_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "auction_monitor:gateway_requests:rate5m",
							Expr:   `sum by (status) (rate(auction_monitor_gateway_requests_total[5m]))`,
						},
						{
							Record: "auction_monitor:gateway_errors:rate5m",
							Expr:   `sum by (kind) (rate(auction_monitor_gateway_errors_total[5m]))`,
						},
						{
							Record: "auction_monitor:monitor_runs:rate5m",
							Expr:   `sum by (result) (rate(auction_monitor_monitor_runs_total[5m]))`,
						},
					},
				},
			},
		},
	}
}

func metadata(name string) PrometheusRuleMetadata {
	return PrometheusRuleMetadata{
		Name: name,
		Labels: map[string]string{
			"prometheus": "system-rules-prometheus",
		},
	}
}
