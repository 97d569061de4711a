// Package metrics declares the Prometheus collectors of the service and registers
// them in one place.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// NewHookFailuresTotal returns a counter of post-commit hook calls that failed or
// panicked, labelled by hook and event name.
func NewHookFailuresTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "post_commit_hook_failures_total",
		Help: "Total number of post-commit hook calls that returned an error or panicked",
	}, []string{"hook", "event"})
}

// NewNotificationsCreatedTotal returns a counter of persisted notification records.
func NewNotificationsCreatedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_created_total",
		Help: "Total number of notification records written",
	})
}

// NewDeliveriesByStatus returns a gauge of deliveries per status, refreshed by the
// backlog job.
func NewDeliveriesByStatus() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "deliveries_by_status",
		Help: "Number of deliveries currently in each status",
	}, []string{"status"})
}

// NewHTTPRequestsTotal returns a counter of served HTTP requests.
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
}

// NewHTTPRequestDuration returns a histogram of HTTP request latency.
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
}

// Metrics groups every collector the application updates.
type Metrics struct {
	HookFailures         *prometheus.CounterVec
	NotificationsCreated prometheus.Counter
	DeliveriesByStatus   *prometheus.GaugeVec
	HTTPRequests         *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		HookFailures:         NewHookFailuresTotal(),
		NotificationsCreated: NewNotificationsCreatedTotal(),
		DeliveriesByStatus:   NewDeliveriesByStatus(),
		HTTPRequests:         NewHTTPRequestsTotal(),
		HTTPRequestDuration:  NewHTTPRequestDuration(),
	}

	var errList []error
	for _, c := range []prometheus.Collector{
		m.HookFailures, m.NotificationsCreated, m.DeliveriesByStatus, m.HTTPRequests, m.HTTPRequestDuration,
	} {
		if err := reg.Register(c); err != nil {
			errList = append(errList, err)
		}
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return m, nil
}
