// Package metrics содержит коллекторы Prometheus сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "flexo_toolkit"

// Metrics набор коллекторов. Регистрируется в переданном registerer.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	UsersProvisioned prometheus.Counter
	Logins           *prometheus.CounterVec
	WebhookEvents    *prometheus.CounterVec
	Checkouts        *prometheus.CounterVec
	ColorConversions *prometheus.CounterVec
	AccessDenied     prometheus.Counter
}

// New создаёт и регистрирует коллекторы.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UsersProvisioned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_provisioned_total",
			Help:      "Users created on first login.",
		}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		WebhookEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Payment webhook events by event name and result.",
		}, []string{"event", "result"}),
		Checkouts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout creation attempts by result.",
		}, []string{"result"}),
		ColorConversions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "color_conversions_total",
			Help:      "Color conversions by input type and result.",
		}, []string{"type", "result"}),
		AccessDenied: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_access_denied_total",
			Help:      "Tool requests rejected because the subscription expired.",
		}),
	}
}

// NewNoop возвращает коллекторы, не зарегистрированные ни в одном реестре.
func NewNoop() *Metrics {
	return New(prometheus.NewRegistry())
}
