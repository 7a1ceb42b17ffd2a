// Package metrics exposes Prometheus collectors for sessions, ticks, relays
// and the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"antarctica_live/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	ticksTotal        *prometheus.CounterVec
	activeSessions    prometheus.Gauge
	lastTemperature   prometheus.Gauge
	relayErrors       *prometheus.CounterVec
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New builds the collectors and registers them on reg. A nil reg means a
// fresh private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		gatherer: reg,
		ticksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "antarctica_ticks_total",
			Help: "Ticks processed by all sessions, by result.",
		}, []string{"result"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "antarctica_active_sessions",
			Help: "Display sessions currently running.",
		}),
		lastTemperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "antarctica_last_temperature_celsius",
			Help: "Most recent synthetic temperature produced by any session.",
		}),
		relayErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "antarctica_relay_errors_total",
			Help: "Readings that could not be forwarded, by sink.",
		}, []string{"sink"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.ticksTotal,
		m.activeSessions,
		m.lastTemperature,
		m.relayErrors,
		m.httpRequestsTotal,
		m.httpDuration,
	)

	m.ticksTotal.WithLabelValues(resultOK)
	m.ticksTotal.WithLabelValues(resultError)
	return m
}

func (m *Metrics) SessionOpened(string) {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *Metrics) SessionClosed(string) {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

func (m *Metrics) TickObserved(_ string, r models.Reading, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.ticksTotal.WithLabelValues(resultError).Inc()
		return
	}
	m.ticksTotal.WithLabelValues(resultOK).Inc()
	m.lastTemperature.Set(r.TemperatureC)
}

// RelayError counts one failed forward to sink.
func (m *Metrics) RelayError(sink string) {
	if m == nil {
		return
	}
	m.relayErrors.WithLabelValues(sink).Inc()
}

// Middleware records count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
