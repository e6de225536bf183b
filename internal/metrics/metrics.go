package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	AppointmentsCreated  prometheus.Counter
	AppointmentConflicts prometheus.Counter
	CommissionsCaptured  *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer, service string) *Collector {
	labels := prometheus.Labels{"service": service}

	c := &Collector{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "HTTP requests by route, method and status.",
			ConstLabels: labels,
		}, []string{"route", "method", "status"}),

		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"route", "method"}),

		AppointmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Appointments booked.",
			ConstLabels: labels,
		}),

		AppointmentConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "appointment_conflicts_total",
			Help:        "Bookings rejected because the slot was taken.",
			ConstLabels: labels,
		}),

		CommissionsCaptured: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "commission_payments_captured_total",
			Help:        "Captured commission payments by provider.",
			ConstLabels: labels,
		}, []string{"provider"}),
	}

	reg.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.AppointmentsCreated,
		c.AppointmentConflicts,
		c.CommissionsCaptured,
	)

	return c
}
