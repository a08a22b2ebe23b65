// Copyright (c) 2024-2026 Carsen Klock under MIT License

// Package diag instruments this module's own behavior -- SMC key-info cache
// hit rate and IOReport sample latency -- as Prometheus collectors. It also
// carries counters for CoreFoundation reference acquire/release; no package
// in this module increments them. It does not expose an HTTP
// handler or run an exporter; wiring the registry up to a scrape endpoint
// is left to whatever embeds this module.
package diag

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors bundles every counter/histogram this package exposes. Embed
// one in a Monitor and register it with whatever prometheus.Registerer the
// embedding program already runs.
type Collectors struct {
	RefAcquired  prometheus.Counter
	RefReleased  prometheus.Counter
	SMCCacheHits prometheus.Counter
	SMCCacheMiss prometheus.Counter
	SampleLatency prometheus.Histogram
}

// NewCollectors builds a fresh, unregistered Collectors set.
func NewCollectors() *Collectors {
	return &Collectors{
		RefAcquired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "socsensor",
			Subsystem: "cfref",
			Name:      "acquired_total",
			Help:      "CoreFoundation references acquired (Create/Copy calls observed).",
		}),
		RefReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "socsensor",
			Subsystem: "cfref",
			Name:      "released_total",
			Help:      "CoreFoundation references released.",
		}),
		SMCCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "socsensor",
			Subsystem: "smc",
			Name:      "key_info_cache_hits_total",
			Help:      "SMC KeyInfo lookups served from the per-Client cache.",
		}),
		SMCCacheMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "socsensor",
			Subsystem: "smc",
			Name:      "key_info_cache_misses_total",
			Help:      "SMC KeyInfo lookups that required a round trip to the SMC.",
		}),
		SampleLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "socsensor",
			Subsystem: "ioreport",
			Name:      "sample_duration_seconds",
			Help:      "Wall-clock time spent inside Engine.Sample/Samples, per call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collectors) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

// Collect implements prometheus.Collector.
func (c *Collectors) Collect(ch chan<- prometheus.Metric) {
	for _, m := range []prometheus.Collector{
		c.RefAcquired, c.RefReleased, c.SMCCacheHits, c.SMCCacheMiss, c.SampleLatency,
	} {
		m.Collect(ch)
	}
}

// ObserveSample records how long a sample call took.
func (c *Collectors) ObserveSample(start time.Time) {
	c.SampleLatency.Observe(time.Since(start).Seconds())
}
