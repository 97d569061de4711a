package http

import (
	"strconv"
	"time"

	"logistics/internal/metrics"

	"github.com/labstack/echo/v4"
)

// Instrument counts requests and observes their latency. The path label is the route
// template, so ids in the URL do not create new series.
func Instrument(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = StatusFor(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			labels := []string{c.Request().Method, path, strconv.Itoa(status)}
			m.HTTPRequests.WithLabelValues(labels...).Inc()
			m.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
