package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/auction-monitor/internal/api"
	"github.com/donaldgifford/auction-monitor/internal/monitor"
)

const shutdownTimeout = 10 * time.Second

func watchCommand() *cobra.Command {
	var runNow bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the monitor on a schedule and serve the summary over HTTP",
		Long: "Runs the monitor every monitor.interval and serves /healthz, /readyz,\n" +
			"/metrics and the /api/v1 summary endpoints until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			shutdown, err := setupTelemetry(ctx, cfg)
			if err != nil {
				return err
			}
			defer flushTelemetry(ctx, shutdown)

			mon := buildMonitor(cfg, appLog)

			sched, err := monitor.NewScheduler(mon, cfg.Monitor.Interval, cfg.Monitor.Timeout, appLog)
			if err != nil {
				return fmt.Errorf("creating scheduler: %w", err)
			}

			if runNow {
				runCtx, cancel := context.WithTimeout(ctx, cfg.Monitor.Timeout)
				if _, err := mon.RunOnce(runCtx); err != nil {
					appLog.Error("initial monitor run failed", "error", err)
				}
				cancel()
			}

			srv := api.NewServer(cfg.Server, mon, appLog, Version)
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			sched.Start()

			select {
			case <-ctx.Done():
				appLog.Info("shutting down")
			case err = <-errCh:
			}

			<-sched.Stop().Done()

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if serr := srv.Shutdown(shutdownCtx); serr != nil && err == nil {
				err = serr
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&runNow, "run-now", true, "run the monitor once at startup")
	return cmd
}
