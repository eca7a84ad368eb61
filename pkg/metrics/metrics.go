// Package metrics exposes Prometheus collectors describing the state of a
// bptreekv store: operation counters and latencies, plus gauges mirroring
// store.Stats. It registers collectors but never starts an HTTP server —
// callers decide how (or whether) to expose /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Collector holds every Prometheus metric the store emits, registered
// against its own Registry rather than the global default so that a
// process can run more than one store, and tests can create a fresh
// Collector per case without a duplicate-registration panic.
type Collector struct {
	Registry *prometheus.Registry

	opsTotal    *prometheus.CounterVec
	opsDuration *prometheus.HistogramVec

	keysTotal     prometheus.Gauge
	nodeCountGau  prometheus.Gauge
	treeHeightGau prometheus.Gauge
	arenaUsedGau  prometheus.Gauge
	arenaCapGau   prometheus.Gauge
	bloomBitsGau  prometheus.Gauge
	bloomFillGau  prometheus.Gauge
}

// NewCollector creates a Collector with its own Registry and registers
// every metric against it.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	fac := promauto.With(reg)

	return &Collector{
		Registry: reg,

		opsTotal: fac.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bptreekv_operations_total",
				Help: "Total number of store operations by type and outcome.",
			},
			[]string{"operation", "status"},
		),
		opsDuration: fac.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bptreekv_operation_duration_seconds",
				Help:    "Store operation duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		keysTotal: fac.NewGauge(prometheus.GaugeOpts{
			Name: "bptreekv_keys_total",
			Help: "Number of live keys in the index.",
		}),
		nodeCountGau: fac.NewGauge(prometheus.GaugeOpts{
			Name: "bptreekv_tree_nodes_total",
			Help: "Number of nodes currently in the B+tree.",
		}),
		treeHeightGau: fac.NewGauge(prometheus.GaugeOpts{
			Name: "bptreekv_tree_height",
			Help: "Height of the B+tree, in levels.",
		}),
		arenaUsedGau: fac.NewGauge(prometheus.GaugeOpts{
			Name: "bptreekv_arena_used_bytes",
			Help: "Bytes currently allocated from the arena.",
		}),
		arenaCapGau: fac.NewGauge(prometheus.GaugeOpts{
			Name: "bptreekv_arena_capacity_bytes",
			Help: "Total capacity of the arena's backing memory.",
		}),
		bloomBitsGau: fac.NewGauge(prometheus.GaugeOpts{
			Name: "bptreekv_bloom_bits",
			Help: "Current size of the Bloom filter's bit vector.",
		}),
		bloomFillGau: fac.NewGauge(prometheus.GaugeOpts{
			Name: "bptreekv_bloom_fill_ratio",
			Help: "Fraction of Bloom filter bits currently set.",
		}),
	}
}

// RecordOperation records one store operation's outcome and latency.
func (c *Collector) RecordOperation(operation string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	c.opsTotal.WithLabelValues(operation, status).Inc()
	c.opsDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IndexStats is the subset of store.Stats the collector mirrors into
// gauges. It is a plain struct rather than an import of the store package
// so metrics stays a leaf dependency any caller can wire in without a cycle.
type IndexStats struct {
	Keys      int
	NodeCount int
	Height    int
	ArenaUsed int
	ArenaCap  int
	BloomBits int
	BloomFill float64
}

// UpdateIndexStats mirrors a store.Stats snapshot into the collector's
// gauges. Callers typically invoke this on a timer or after each mutating
// operation.
func (c *Collector) UpdateIndexStats(s IndexStats) {
	c.keysTotal.Set(float64(s.Keys))
	c.nodeCountGau.Set(float64(s.NodeCount))
	c.treeHeightGau.Set(float64(s.Height))
	c.arenaUsedGau.Set(float64(s.ArenaUsed))
	c.arenaCapGau.Set(float64(s.ArenaCap))
	c.bloomBitsGau.Set(float64(s.BloomBits))
	c.bloomFillGau.Set(s.BloomFill)
}
