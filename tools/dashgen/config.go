package main

import "errors"

// KnownMetrics is the set of metric names exported by auction-monitor plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"auction_monitor_http_request_duration_seconds": true,
	"auction_monitor_http_requests_total":           true,

	// Health metrics.
	"auction_monitor_healthz_up": true,
	"auction_monitor_readyz_up":  true,

	// Gateway metrics.
	"auction_monitor_gateway_requests_total":            true,
	"auction_monitor_gateway_request_duration_seconds":  true,
	"auction_monitor_gateway_authentications_total":     true,
	"auction_monitor_gateway_cache_invalidations_total": true,
	"auction_monitor_gateway_errors_total":              true,

	// Monitor metrics.
	"auction_monitor_monitor_runs_total":           true,
	"auction_monitor_monitor_run_duration_seconds": true,
	"auction_monitor_auctions":                     true,
	"auction_monitor_average_bids":                 true,
	"auction_monitor_average_progress":             true,
	"auction_monitor_last_success_timestamp":       true,

	// Recording rules.
	"auction_monitor:http_requests:rate5m":    true,
	"auction_monitor:http_errors:rate5m":      true,
	"auction_monitor:gateway_requests:rate5m": true,
	"auction_monitor:gateway_errors:rate5m":   true,
	"auction_monitor:monitor_runs:rate5m":     true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
