package paybc

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	mRequests *prometheus.CounterVec
	mDuration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	return &metrics{
		mRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paybc_requests_total",
			Help: "Number of requests to PayBC by step and response status.",
		}, []string{"step", "status"}),
		mDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "paybc_request_duration_seconds",
			Help:    "Duration of a single request to PayBC.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 8),
		}, []string{"step"}),
	}
}

// observe status 0 means the request failed before a response was received.
func (m *metrics) observe(step string, status int, d time.Duration) {
	m.mRequests.WithLabelValues(step, strconv.Itoa(status)).Inc()
	m.mDuration.WithLabelValues(step).Observe(d.Seconds())
}

func (p *Provider) Describe(ch chan<- *prometheus.Desc) {
	p.m.mRequests.Describe(ch)
	p.m.mDuration.Describe(ch)
}

func (p *Provider) Collect(ch chan<- prometheus.Metric) {
	p.m.mRequests.Collect(ch)
	p.m.mDuration.Collect(ch)
}

// check interfaces
var (
	_ prometheus.Collector = (*Provider)(nil)
)
