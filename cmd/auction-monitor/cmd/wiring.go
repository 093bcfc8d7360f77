package cmd

import (
	"context"
	"log/slog"

	"github.com/donaldgifford/auction-monitor/internal/config"
	"github.com/donaldgifford/auction-monitor/internal/gateway"
	"github.com/donaldgifford/auction-monitor/internal/marketplace"
	"github.com/donaldgifford/auction-monitor/internal/monitor"
	"github.com/donaldgifford/auction-monitor/internal/telemetry"
	"github.com/donaldgifford/auction-monitor/pkg/logger"
)

// buildMonitor wires the gateway, marketplace client and monitor for cfg.
func buildMonitor(cfg *config.Config, log *slog.Logger) *monitor.Monitor {
	mc := cfg.Marketplace

	gw := gateway.New(mc.BaseURL, mc.Email, mc.Password,
		gateway.WithTimeout(mc.Timeout),
		gateway.WithRateLimiter(gateway.NewRateLimiter(mc.RateLimit.PerSecond, mc.RateLimit.Burst)),
		gateway.WithLogger(logger.WithComponent(log, "gateway")),
	)

	return monitor.New(
		marketplace.New(gw, mc.BaseURL),
		monitor.WithLogger(logger.WithComponent(log, "monitor")),
	)
}

func setupTelemetry(ctx context.Context, cfg *config.Config) (telemetry.ShutdownFunc, error) {
	t := cfg.Telemetry
	return telemetry.Setup(ctx, telemetry.Config{
		Enabled:     t.Enabled,
		Endpoint:    t.Endpoint,
		Insecure:    t.Insecure,
		ServiceName: t.ServiceName,
		SampleRatio: t.SampleRatio,
	}, Version)
}

// flushTelemetry runs shutdown on a context detached from command
// cancellation so buffered spans are still exported after a signal.
func flushTelemetry(ctx context.Context, shutdown telemetry.ShutdownFunc) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		appLog.Warn("flushing telemetry", "error", err)
	}
}
