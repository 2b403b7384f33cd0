// Package promstep exports step metrics to Prometheus.
//
// A Collector owns three metric vectors labeled by step name:
//
//	{namespace}_step_calls_total{step,result}
//	{namespace}_step_duration_seconds{step}
//	{namespace}_step_concurrency{step}
//
// step_concurrency samples, per call, how many calls of the step were in
// flight when it started, including itself.
//
// Use [Collector.For] to obtain a middleware.MetricsCollector for one step.
package promstep

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/fxsml/gostep/middleware"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// CollectorOpts configures a Collector.
type CollectorOpts struct {
	// Namespace prefixes all metric names.
	// Default: "gostep".
	Namespace string `yaml:"namespace"`
	// Buckets are the duration histogram buckets in seconds.
	// Default: prometheus.DefBuckets.
	Buckets []float64 `yaml:"buckets"`
	// ConcurrencyBuckets are the concurrency histogram buckets.
	// Default: 1, 2, 4, ... 256.
	ConcurrencyBuckets []float64 `yaml:"concurrency_buckets"`
}

// Collector records step metrics into Prometheus vectors.
type Collector struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	concurrency *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer, opts CollectorOpts) (*Collector, error) {
	if opts.Namespace == "" {
		opts.Namespace = "gostep"
	}
	if len(opts.Buckets) == 0 {
		opts.Buckets = prometheus.DefBuckets
	}
	if len(opts.ConcurrencyBuckets) == 0 {
		opts.ConcurrencyBuckets = prometheus.ExponentialBuckets(1, 2, 9)
	}

	c := &Collector{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "step_calls_total",
			Help:      "Number of step calls by result.",
		}, []string{"step", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of step calls.",
			Buckets:   opts.Buckets,
		}, []string{"step"}),
		concurrency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "step_concurrency",
			Help:      "Calls of the step in flight when a call started.",
			Buckets:   opts.ConcurrencyBuckets,
		}, []string{"step"}),
	}

	for _, m := range []prometheus.Collector{c.calls, c.duration, c.concurrency} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("promstep: register: %w", err)
		}
	}
	return c, nil
}

// For returns a MetricsCollector recording calls of the named step.
func (c *Collector) For(step string) middleware.MetricsCollector {
	success := c.calls.WithLabelValues(step, resultSuccess)
	failure := c.calls.WithLabelValues(step, resultFailure)
	duration := c.duration.WithLabelValues(step)
	concurrency := c.concurrency.WithLabelValues(step)
	return func(m *middleware.Metrics) {
		if m.Error != nil {
			failure.Inc()
		} else {
			success.Inc()
		}
		duration.Observe(m.Duration.Seconds())
		concurrency.Observe(float64(m.InFlight))
	}
}

// WriteText writes all metrics gathered from g to w in the Prometheus text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("promstep: gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("promstep: write: %w", err)
		}
	}
	return nil
}
