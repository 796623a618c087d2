// Package metrics collects Prometheus metrics for the fortune cache.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CacheRecorder is what the cache store reports to. All methods take the
// cache domain as the only label so cardinality stays fixed.
type CacheRecorder interface {
	RecordHit(domain string)
	RecordMiss(domain string)
	RecordShared(domain string)
	RecordFetch(domain string, latency time.Duration, err error)
}

// Collector is the Prometheus-backed CacheRecorder.
type Collector struct {
	hits         *prometheus.CounterVec
	misses       *prometheus.CounterVec
	shared       *prometheus.CounterVec
	fetchFail    *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fortune_cache_hits_total",
			Help: "Cache lookups answered from memory.",
		}, []string{"domain"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fortune_cache_misses_total",
			Help: "Cache lookups that had to wait for a fetch.",
		}, []string{"domain"}),
		shared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fortune_cache_shared_total",
			Help: "Callers that received a result shared with concurrent callers.",
		}, []string{"domain"}),
		fetchFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fortune_fetch_fail_total",
			Help: "Fetches that returned an error.",
		}, []string{"domain"}),
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fortune_fetch_latency_seconds",
			Help:    "Latency of remote fetches (seconds).",
			Buckets: prometheus.DefBuckets,
		}, []string{"domain"}),
	}

	reg.MustRegister(c.hits, c.misses, c.shared, c.fetchFail, c.fetchLatency)

	return c
}

func (c *Collector) RecordHit(domain string) {
	c.hits.WithLabelValues(domain).Inc()
}

func (c *Collector) RecordMiss(domain string) {
	c.misses.WithLabelValues(domain).Inc()
}

func (c *Collector) RecordShared(domain string) {
	c.shared.WithLabelValues(domain).Inc()
}

// RecordFetch observes latency for every fetch and counts failures.
func (c *Collector) RecordFetch(domain string, latency time.Duration, err error) {
	c.fetchLatency.WithLabelValues(domain).Observe(latency.Seconds())
	if err != nil {
		c.fetchFail.WithLabelValues(domain).Inc()
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordHit(string)                         {}
func (Nop) RecordMiss(string)                        {}
func (Nop) RecordShared(string)                      {}
func (Nop) RecordFetch(string, time.Duration, error) {}
