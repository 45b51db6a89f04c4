package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_CountersStartAtZeroAndIncrement(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, 0.0, testutil.ToFloat64(r.TransactionsGenerated))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.FraudWindows))

	r.TransactionsGenerated.Inc()
	r.TransactionsGenerated.Inc()
	r.FraudTransactions.Inc()
	r.EmptyPartitions.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.TransactionsGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.FraudTransactions))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.EmptyPartitions))
}

func TestNewRegistry_GathererExposesAllMetrics(t *testing.T) {
	r := NewRegistry()
	r.ChunkDuration.Observe(0.25)

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"tse_transactions_generated_total",
		"tse_fraud_transactions_total",
		"tse_fraud_windows_total",
		"tse_customers_processed_total",
		"tse_customers_failed_total",
		"tse_empty_partitions_total",
		"tse_chunk_duration_seconds",
	} {
		assert.True(t, names[want], "missing metric %s", want)
	}
}

func TestNewRegistry_IndependentInstances(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	a.CustomersProcessed.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.CustomersProcessed))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CustomersProcessed))
}
