package web

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	SessionsActive prometheus.Gauge
	TerminalLines  *prometheus.CounterVec
	Navigations    prometheus.Counter
	ContactTotal   *prometheus.CounterVec
}

// NewMetrics registers the collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "folio_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "folio_terminal_sessions_active",
			Help: "Number of live terminal sessions",
		}),
		TerminalLines: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_terminal_lines_total",
				Help: "Lines submitted to terminal sessions, by the mode that read them",
			},
			[]string{"mode"},
		),
		Navigations: f.NewCounter(prometheus.CounterOpts{
			Name: "folio_terminal_navigations_total",
			Help: "Navigations issued by terminal sessions",
		}),
		ContactTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_contact_submissions_total",
				Help: "Contact form submissions by result",
			},
			[]string{"result"},
		),
	}
}

// Middleware records request counts and latency by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
