package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the monitor periodically.
type Scheduler struct {
	cron    *cron.Cron
	monitor *Monitor
	timeout time.Duration
	log     *slog.Logger
}

// NewScheduler creates a Scheduler that runs m every interval. Each run is
// bounded by timeout; a non-positive timeout defaults to the interval.
func NewScheduler(
	m *Monitor,
	interval time.Duration,
	timeout time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("monitor interval must be positive (got %s)", interval)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if timeout <= 0 {
		timeout = interval
	}

	s := &Scheduler{
		cron:    c,
		monitor: m,
		timeout: timeout,
		log:     log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.run); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled monitor runs.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.monitor.RunOnce(ctx); err != nil {
		s.log.Error("scheduled monitor run failed", "error", err)
	}
}
