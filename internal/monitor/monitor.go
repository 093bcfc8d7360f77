// Package monitor fetches buyer auctions and maintains the latest summary.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/auction-monitor/internal/metrics"
	"github.com/donaldgifford/auction-monitor/pkg/stats"
	domain "github.com/donaldgifford/auction-monitor/pkg/types"
)

const tracerName = "github.com/donaldgifford/auction-monitor/internal/monitor"

// AuctionSource provides the buyer's current auction listing.
type AuctionSource interface {
	RunningAuctions(ctx context.Context) (*domain.BuyerAuctions, error)
}

// Monitor computes auction summaries from an AuctionSource.
type Monitor struct {
	source  AuctionSource
	log     *slog.Logger
	tracer  trace.Tracer
	nowFunc func() time.Time

	mu      sync.RWMutex
	latest  *stats.Summary
	lastErr error
}

// Option configures the Monitor.
type Option func(*Monitor)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) {
		m.log = l
	}
}

// WithTracerProvider records run spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Monitor) {
		m.tracer = tp.Tracer(tracerName)
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(m *Monitor) {
		m.nowFunc = f
	}
}

// New creates a Monitor reading from source.
func New(source AuctionSource, opts ...Option) *Monitor {
	m := &Monitor{
		source:  source,
		log:     slog.Default(),
		tracer:  otel.Tracer(tracerName),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunOnce fetches the auction listing, computes and logs its summary, and
// records it as the latest summary. Errors are returned unchanged in kind.
func (m *Monitor) RunOnce(ctx context.Context) (*stats.Summary, error) {
	ctx, span := m.tracer.Start(ctx, "monitor.run")
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.MonitorRunDuration.Observe(time.Since(start).Seconds())
	}()

	m.log.InfoContext(ctx, "auction monitor started")

	listing, err := m.source.RunningAuctions(ctx)
	if err != nil {
		metrics.MonitorRunsTotal.WithLabelValues("failure").Inc()
		err = fmt.Errorf("running monitor: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetching auctions failed")
		m.setResult(nil, err)
		return nil, err
	}

	s := stats.Summarize(listing.Items, m.nowFunc())

	m.log.InfoContext(ctx, "auction summary",
		"auctions", s.AuctionCount,
		"listing_total", listing.Total,
		"page", listing.Page,
		"average_bids", s.AverageBids,
		"average_progress", s.AverageProgress,
	)

	span.SetAttributes(
		attribute.Int("auction.count", s.AuctionCount),
		attribute.Float64("auction.average_bids", s.AverageBids),
	)

	metrics.MonitorRunsTotal.WithLabelValues("success").Inc()
	metrics.AuctionsTotal.Set(float64(s.AuctionCount))
	metrics.AverageBids.Set(s.AverageBids)
	metrics.AverageProgress.Set(s.AverageProgress)
	metrics.LastSuccessTimestamp.Set(float64(s.ComputedAt.Unix()))

	m.setResult(&s, nil)
	return &s, nil
}

// Latest returns the most recent successful summary, if any.
func (m *Monitor) Latest() (*stats.Summary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.latest == nil {
		return nil, false
	}
	s := *m.latest
	return &s, true
}

// LastError returns the error of the most recent run, or nil if it succeeded.
func (m *Monitor) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

func (m *Monitor) setResult(s *stats.Summary, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s != nil {
		m.latest = s
	}
	m.lastErr = err
}
