package transaction

import (
	"sort"
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want string
	}{
		{name: "rounds to two decimals", raw: 118.40499, want: "118.4"},
		{name: "rounds half up", raw: 10.005, want: "10.01"},
		{name: "floors negative draw", raw: -32.7, want: "0.01"},
		{name: "floors zero", raw: 0, want: "0.01"},
		{name: "keeps floor itself", raw: 0.01, want: "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAmount(tt.raw)
			assert.Equal(t, tt.want, got.String())
			assert.True(t, got.GreaterThanOrEqual(AmountFloor))
		})
	}
}

func TestNewAmount_Properties(t *testing.T) {
	floored := func(raw float64) bool {
		got := NewAmount(raw)
		return got.GreaterThanOrEqual(AmountFloor) && got.Exponent() >= -2
	}
	if err := quick.Check(floored, nil); err != nil {
		t.Error(err)
	}
}

func TestByTimestamp_SortsNonDecreasing(t *testing.T) {
	base := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	txs := []*Transaction{
		{Timestamp: base.Add(3 * time.Hour)},
		{Timestamp: base},
		{Timestamp: base.Add(time.Hour)},
		{Timestamp: base.Add(time.Hour)},
	}

	sort.Stable(ByTimestamp(txs))
	for i := 1; i < len(txs); i++ {
		assert.False(t, txs[i].Timestamp.Before(txs[i-1].Timestamp))
	}
}
