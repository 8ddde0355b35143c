package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry           *prometheus.Registry
	service            string
	downstreamDuration *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

func New(service string) *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	downstream := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "downstream_request_duration_seconds",
		Help:    "Duration of calls to other services.",
		Buckets: prometheus.DefBuckets,
	}, []string{"service", "target", "outcome"})

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests by route and status.",
	}, []string{"service", "method", "route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of handled HTTP requests by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"service", "method", "route"})

	reg.MustRegister(downstream, requests, duration)

	return &Metrics{
		registry:           reg,
		service:            service,
		downstreamDuration: downstream,
		httpRequests:       requests,
		httpDuration:       duration,
	}
}

func (m *Metrics) ObserveDownstream(target, outcome string, d time.Duration) {
	m.downstreamDuration.WithLabelValues(m.service, target, outcome).Observe(d.Seconds())
}

// Middleware counts and times requests by matched route so that path parameters do not explode cardinality.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			}
		}

		route := c.Route().Path

		m.httpRequests.WithLabelValues(m.service, c.Method(), route, statusClass(status)).Inc()
		m.httpDuration.WithLabelValues(m.service, c.Method(), route).Observe(time.Since(start).Seconds())

		return err
	}
}

func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	}))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
