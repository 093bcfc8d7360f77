package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/auction-monitor/internal/gateway"
)

const requestIDHeader = gateway.HeaderRequestID

// probePaths are logged on their first success and on every failure.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header, the echo context, and upstream marketplace calls.
// Repeated successful probe requests are not logged.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var probesSeen sync.Map

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			reqID := req.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)
			c.SetRequest(req.WithContext(gateway.ContextWithRequestID(req.Context(), reqID)))

			err := next(c)
			commitError(c, err)

			path := req.URL.Path
			status := c.Response().Status
			level := levelFor(status)

			if _, probe := probePaths[path]; probe {
				if status >= http.StatusBadRequest {
					level = slog.LevelWarn
				} else if _, seen := probesSeen.LoadOrStore(path, struct{}{}); seen {
					return err
				}
			}

			log.Log(req.Context(), level, "request",
				"method", req.Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// commitError writes err through the echo error handler so the recorded
// status is the one the client sees. The handler is a no-op on a committed
// response, so the later call from echo itself does nothing.
func commitError(c echo.Context, err error) {
	if err != nil && !c.Response().Committed {
		c.Error(err)
	}
}
