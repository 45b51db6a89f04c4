package sampling

import (
	"math/rand"
	"sort"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/errors"
)

// Discrete is a reusable weighted sampler: each item is drawn with
// probability proportional to its configured weight. The cumulative
// distribution is derived once at construction and cached, so a draw is a
// single binary search. Build one per profile and reuse it across draws.
type Discrete[T any] struct {
	items []T
	cum   []float64
	total float64
}

// NewDiscrete builds a sampler over parallel item/weight slices. Weights
// must be non-negative and at least one must be positive.
func NewDiscrete[T any](items []T, weights []float64) (*Discrete[T], error) {
	if len(items) != len(weights) {
		return nil, errors.NewConfigurationError("WEIGHT_MISMATCH",
			"item and weight slices differ in length")
	}
	if len(items) == 0 {
		return nil, errors.NewConfigurationError("ZERO_WEIGHTS", "no items to sample from")
	}

	d := &Discrete[T]{
		items: make([]T, len(items)),
		cum:   make([]float64, len(items)),
	}
	copy(d.items, items)

	for i, w := range weights {
		if w < 0 {
			return nil, errors.NewConfigurationError("NEGATIVE_WEIGHT",
				"weight map has a negative entry")
		}
		d.total += w
		d.cum[i] = d.total
	}
	if d.total <= 0 {
		return nil, errors.NewConfigurationError("ZERO_WEIGHTS",
			"weight map has no non-zero entry")
	}
	return d, nil
}

// NewDiscreteFromMap builds a string sampler from a weight map. Keys are
// sorted so the cumulative layout, and therefore every seeded draw, is
// independent of map iteration order.
func NewDiscreteFromMap(weights map[string]float64) (*Discrete[string], error) {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ws := make([]float64, len(keys))
	for i, k := range keys {
		ws[i] = weights[k]
	}
	return NewDiscrete(keys, ws)
}

// Draw returns one item, selected with probability proportional to weight.
func (d *Discrete[T]) Draw(rng *rand.Rand) T {
	x := rng.Float64() * d.total
	i := sort.SearchFloat64s(d.cum, x)
	// SearchFloat64s returns the insertion point; an exact hit on a
	// cumulative boundary belongs to the next item.
	if i < len(d.cum) && d.cum[i] == x {
		i++
	}
	if i >= len(d.items) {
		i = len(d.items) - 1
	}
	return d.items[i]
}

// Len returns the number of sampleable items.
func (d *Discrete[T]) Len() int {
	return len(d.items)
}

// Total returns the total configured weight.
func (d *Discrete[T]) Total() float64 {
	return d.total
}
