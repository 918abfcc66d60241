package http

import (
	"strconv"
	"time"

	"courierdispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestObserver records Prometheus request metrics and writes one log line
// per request. The route label is the registered path template, so ids do not
// blow up label cardinality.
func RequestObserver(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			duration := time.Since(start)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)

			metrics.HTTPRequestDuration.WithLabelValues(c.Request().Method, route, status).Observe(duration.Seconds())
			metrics.HTTPRequestTotal.WithLabelValues(c.Request().Method, route, status).Inc()

			log.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("route", route),
				zap.String("status", status),
				zap.Duration("duration", duration),
			)
			return nil
		}
	}
}
