// Package metrics collects and exposes Prometheus metrics for the API server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the HTTP layer records through.
type Recorder interface {
	RecordRequest(method string, statusCode int, duration time.Duration)
	RecordAuthFailure()
	RecordPresignIssued(kind string)
}

// Collector implements Recorder on top of a Prometheus registry.
type Collector struct {
	requests       *prometheus.CounterVec
	requestLatency prometheus.Histogram
	authFailures   prometheus.Counter
	presignsIssued *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rosebud_http_requests_total",
			Help: "HTTP requests served, by method and status code.",
		}, []string{"method", "status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rosebud_http_request_latency_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rosebud_auth_failures_total",
			Help: "Rejected register/login attempts.",
		}),
		presignsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rosebud_presigned_urls_total",
			Help: "Presigned attachment URLs issued, by kind (put or get).",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.authFailures,
		c.presignsIssued,
	)

	return c
}

func (c *Collector) RecordRequest(method string, statusCode int, duration time.Duration) {
	c.requests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.requestLatency.Observe(duration.Seconds())
}

func (c *Collector) RecordAuthFailure() {
	c.authFailures.Inc()
}

func (c *Collector) RecordPresignIssued(kind string) {
	c.presignsIssued.WithLabelValues(kind).Inc()
}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
