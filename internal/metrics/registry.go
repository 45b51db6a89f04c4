package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the generation metrics for one run. Counters are
// goroutine-safe, so chunk workers increment them directly.
type Registry struct {
	registry *prometheus.Registry

	// Generation metrics
	TransactionsGenerated prometheus.Counter
	FraudTransactions     prometheus.Counter
	FraudWindows          prometheus.Counter
	CustomersProcessed    prometheus.Counter
	CustomersFailed       prometheus.Counter
	EmptyPartitions       prometheus.Counter
	ChunkDuration         prometheus.Histogram
}

// NewRegistry creates a registry with all generation metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		registry: reg,
		TransactionsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tse_transactions_generated_total",
			Help: "Transaction records emitted across all partitions.",
		}),
		FraudTransactions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tse_fraud_transactions_total",
			Help: "Transaction records tagged as fraud.",
		}),
		FraudWindows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tse_fraud_windows_total",
			Help: "Customers that received a fraud window this run.",
		}),
		CustomersProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tse_customers_processed_total",
			Help: "Customers whose streams were generated successfully.",
		}),
		CustomersFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tse_customers_failed_total",
			Help: "Customers aborted by a sampling error.",
		}),
		EmptyPartitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tse_empty_partitions_total",
			Help: "(chunk, profile) partitions with no matching customers.",
		}),
		ChunkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tse_chunk_duration_seconds",
			Help:    "Wall time spent generating one chunk.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}

	reg.MustRegister(
		r.TransactionsGenerated,
		r.FraudTransactions,
		r.FraudWindows,
		r.CustomersProcessed,
		r.CustomersFailed,
		r.EmptyPartitions,
		r.ChunkDuration,
	)
	return r
}

// Gatherer exposes the underlying registry for exposition or inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
