package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all Prometheus collectors for the application.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics.
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Invitation metrics.
	InvitationsCreatedTotal   *prometheus.CounterVec
	GuestLinkResolutionsTotal *prometheus.CounterVec

	// Email metrics.
	EmailsSentTotal *prometheus.CounterVec

	// Server lifecycle.
	ServerStartTime prometheus.Gauge
}

// New creates and registers all Prometheus metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stm_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path_pattern", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stm_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path_pattern"}),

		InvitationsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stm_invitations_created_total",
			Help: "Total number of invitations created.",
		}, []string{"recipient_type"}),

		GuestLinkResolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stm_guest_link_resolutions_total",
			Help: "Total number of guest link resolution attempts.",
		}, []string{"outcome"}),

		EmailsSentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stm_emails_sent_total",
			Help: "Total number of emails sent.",
		}, []string{"template", "status"}),

		ServerStartTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stm_server_start_time_seconds",
			Help: "Unix timestamp when the server started.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.InvitationsCreatedTotal,
		m.GuestLinkResolutionsTotal,
		m.EmailsSentTotal,
		m.ServerStartTime,
	)

	m.ServerStartTime.Set(float64(time.Now().Unix()))

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

// Registry returns the private Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records one served request against the counters.
func (m *Metrics) ObserveHTTPRequest(method, pathPattern string, statusCode int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, pathPattern, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, pathPattern).Observe(seconds)
}

// IncInvitationCreated increments the invitation counter for "user" or "guest".
func (m *Metrics) IncInvitationCreated(recipientType string) {
	if m == nil {
		return
	}
	m.InvitationsCreatedTotal.WithLabelValues(recipientType).Inc()
}

// IncGuestLinkResolution increments the resolution counter for "ok" or "rejected".
func (m *Metrics) IncGuestLinkResolution(outcome string) {
	if m == nil {
		return
	}
	m.GuestLinkResolutionsTotal.WithLabelValues(outcome).Inc()
}

// IncEmailSent increments the email counter for the given template and "ok" or "error".
func (m *Metrics) IncEmailSent(template, status string) {
	if m == nil {
		return
	}
	m.EmailsSentTotal.WithLabelValues(template, status).Inc()
}
