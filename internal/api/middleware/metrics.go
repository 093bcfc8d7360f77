// Package middleware provides Echo middleware for the watch-mode API.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/auction-monitor/internal/metrics"
)

// unmatchedPath labels requests that hit no registered route, keeping
// arbitrary URLs out of the label set.
const unmatchedPath = "unmatched"

// probeGauges maps operational paths to their up/down gauge. These paths
// and /metrics are excluded from the request histogram and counter.
var probeGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and status.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" || path == "/*" {
				path = unmatchedPath
			}

			if path == "/metrics" {
				return next(c)
			}
			if gauge, ok := probeGauges[path]; ok {
				err := next(c)
				commitError(c, err)
				setUp(gauge, c.Response().Status)
				return err
			}

			start := time.Now()

			err := next(c)
			commitError(c, err)

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

func setUp(gauge prometheus.Gauge, status int) {
	if status >= 200 && status < 300 {
		gauge.Set(1)
		return
	}
	gauge.Set(0)
}
