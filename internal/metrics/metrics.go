package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripdesk",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripdesk",
			Name:      "bookings_total",
			Help:      "Accepted bookings by type.",
		},
		[]string{"type"},
	)

	notifyFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripdesk",
			Name:      "notification_failures_total",
			Help:      "Notification channel failures by channel.",
		},
		[]string{"channel"},
	)

	dispatchDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tripdesk",
			Name:      "dispatch_dropped_total",
			Help:      "Async notification tasks dropped because the queue was full.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookings, notifyFailures, dispatchDropped)
	})
}

func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

func IncBooking(bookingType string) {
	bookings.WithLabelValues(bookingType).Inc()
}

func IncNotifyFailure(channel string) {
	notifyFailures.WithLabelValues(channel).Inc()
}

func IncDispatchDropped() {
	dispatchDropped.Inc()
}
