// Package metrics exposes Prometheus collectors for Blueprint update passes.
//
// A nil *Collector is valid and records nothing, so callers never need to
// check whether metrics are enabled.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/blueprint/pkg/layout"
	"github.com/go-drift/blueprint/pkg/reconcile"
)

// Collector records pass, view and size cache metrics.
type Collector struct {
	passes       prometheus.Counter
	passDuration prometheus.Histogram
	views        *prometheus.CounterVec
	lifecycle    *prometheus.CounterVec
	measurements *prometheus.CounterVec
	sizeCache    *prometheus.CounterVec
}

// NewCollector creates collectors whose names start with namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "update_passes_total",
			Help:      "Total number of layout and reconcile passes",
		}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "update_pass_duration_seconds",
			Help:      "Duration of layout and reconcile passes",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		views: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_operations_total",
			Help:      "Native view operations by kind",
		}, []string{"op"}),
		lifecycle: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_callbacks_total",
			Help:      "Lifecycle callbacks queued by event",
		}, []string{"event"}),
		measurements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurements_total",
			Help:      "Element measurements by result",
		}, []string{"result"}),
		sizeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "size_cache_requests_total",
			Help:      "Size-that-fits cache lookups by result",
		}, []string{"result"}),
	}
}

// Collectors returns every collector, for registration.
func (c *Collector) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.passes, c.passDuration, c.views, c.lifecycle, c.measurements, c.sizeCache}
}

// Register registers every collector with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range c.Collectors() {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// ObservePass records one completed pass.
func (c *Collector) ObservePass(d time.Duration, views reconcile.Stats, measured layout.Stats) {
	if c == nil {
		return
	}
	c.passes.Inc()
	c.passDuration.Observe(d.Seconds())
	c.views.WithLabelValues("create").Add(float64(views.Created))
	c.views.WithLabelValues("update").Add(float64(views.Updated))
	c.views.WithLabelValues("remove").Add(float64(views.Removed))
	c.views.WithLabelValues("move").Add(float64(views.Moved))
	c.lifecycle.WithLabelValues("appear").Add(float64(views.Appeared))
	c.lifecycle.WithLabelValues("disappear").Add(float64(views.Disappeared))
	c.ObserveMeasurements(measured)
}

// ObserveMeasurements records layout engine work.
func (c *Collector) ObserveMeasurements(s layout.Stats) {
	if c == nil {
		return
	}
	c.measurements.WithLabelValues("computed").Add(float64(s.MeasureCalls))
	c.measurements.WithLabelValues("cached").Add(float64(s.CacheHits))
}

// ObserveSizeCache records one size cache lookup.
func (c *Collector) ObserveSizeCache(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.sizeCache.WithLabelValues(result).Inc()
}
