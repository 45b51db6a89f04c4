package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/merchant"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/profile"
)

// ProfileBuilder builds valid test Profiles
type ProfileBuilder struct {
	t       *testing.T
	name    string
	dow     [7]float64
	seasons []profile.SeasonWeight
	ampm    [2]float64
	catWt   map[string]float64
	catAmt  map[string]profile.AmountParams
	travel  float64
	maxDist float64
	txRange profile.Range
}

// NewProfileBuilder creates a ProfileBuilder with uniform defaults
func NewProfileBuilder(t *testing.T, name string) *ProfileBuilder {
	t.Helper()
	return &ProfileBuilder{
		t:    t,
		name: name,
		dow:  [7]float64{1, 1, 1, 1, 1, 1, 1},
		ampm: [2]float64{1, 1},
		catWt: map[string]float64{
			"grocery_pos":   5,
			"gas_transport": 3,
			"entertainment": 2,
		},
		catAmt: map[string]profile.AmountParams{
			"grocery_pos":   {Mean: 120, StdDev: 12},
			"gas_transport": {Mean: 60, StdDev: 15},
			"entertainment": {Mean: 45, StdDev: 20},
		},
		travel:  10,
		maxDist: 50,
		txRange: profile.Range{Min: 1, Max: 4},
	}
}

// WithDayOfWeek sets the Monday-first day weights
func (b *ProfileBuilder) WithDayOfWeek(dow [7]float64) *ProfileBuilder {
	b.dow = dow
	return b
}

// WithSeason appends a seasonal interval
func (b *ProfileBuilder) WithSeason(name, start, end string, weight float64) *ProfileBuilder {
	b.t.Helper()
	s, err := profile.ParseMonthDay(start)
	require.NoError(b.t, err)
	e, err := profile.ParseMonthDay(end)
	require.NoError(b.t, err)
	b.seasons = append(b.seasons, profile.SeasonWeight{Name: name, Start: s, End: e, Weight: weight})
	return b
}

// WithAMPM sets the half-day weights
func (b *ProfileBuilder) WithAMPM(am, pm float64) *ProfileBuilder {
	b.ampm = [2]float64{am, pm}
	return b
}

// WithCategories replaces the category weight and amount maps
func (b *ProfileBuilder) WithCategories(weights map[string]float64, amounts map[string]profile.AmountParams) *ProfileBuilder {
	b.catWt = weights
	b.catAmt = amounts
	return b
}

// WithTravel sets the travel percentage and max distance
func (b *ProfileBuilder) WithTravel(pct, maxDist float64) *ProfileBuilder {
	b.travel = pct
	b.maxDist = maxDist
	return b
}

// WithTxPerDay sets the per-day transaction count range
func (b *ProfileBuilder) WithTxPerDay(min, max int) *ProfileBuilder {
	b.txRange = profile.Range{Min: min, Max: max}
	return b
}

// Build creates the Profile and asserts it validates
func (b *ProfileBuilder) Build() *profile.Profile {
	b.t.Helper()
	p := &profile.Profile{
		Name: b.name,
		DateWeights: profile.DateWeights{
			DayOfWeek: b.dow,
			Seasons:   b.seasons,
			AMPM:      b.ampm,
		},
		CategoryWeights: b.catWt,
		CategoryAmounts: b.catAmt,
		TravelPct:       b.travel,
		TravelMaxDist:   b.maxDist,
		TxPerDay:        b.txRange,
	}
	require.NoError(b.t, p.Validate())
	return p
}

// StoreWith builds a profile store containing the given normal profiles
// plus an automatically derived fraud counterpart for each.
func StoreWith(t *testing.T, profiles ...*profile.Profile) *profile.Store {
	t.Helper()
	all := make([]*profile.Profile, 0, len(profiles)*2)
	for _, p := range profiles {
		all = append(all, p, FraudCounterpart(t, p))
	}
	store, err := profile.NewStore(all)
	require.NoError(t, err)
	return store
}

// FraudCounterpart derives a fraud profile for p: night-heavy, higher
// amounts, more transactions per day.
func FraudCounterpart(t *testing.T, p *profile.Profile) *profile.Profile {
	t.Helper()
	amounts := make(map[string]profile.AmountParams, len(p.CategoryAmounts))
	for cat, a := range p.CategoryAmounts {
		amounts[cat] = profile.AmountParams{Mean: a.Mean * 4, StdDev: a.StdDev * 2}
	}
	weights := make(map[string]float64, len(p.CategoryWeights))
	for cat, w := range p.CategoryWeights {
		weights[cat] = w
	}
	return NewProfileBuilder(t, profile.FraudPrefix+p.Name).
		WithDayOfWeek(p.DateWeights.DayOfWeek).
		WithAMPM(3, 1).
		WithCategories(weights, amounts).
		WithTravel(80, 200).
		WithTxPerDay(p.TxPerDay.Max, p.TxPerDay.Max*3).
		Build()
}

// CatalogFor builds a merchant catalog covering every weighted category of
// the given profiles, three merchants per category.
func CatalogFor(t *testing.T, profiles ...*profile.Profile) *merchant.Catalog {
	t.Helper()
	seen := make(map[string]bool)
	var merchants []*merchant.Merchant
	for _, p := range profiles {
		for cat := range p.CategoryWeights {
			if seen[cat] {
				continue
			}
			seen[cat] = true
			for i := 0; i < 3; i++ {
				m, err := merchant.NewMerchant(
					cat+"_merchant_"+string(rune('a'+i)),
					cat, 40.0+float64(i), -75.0+float64(i))
				require.NoError(t, err)
				merchants = append(merchants, m)
			}
		}
	}
	catalog, err := merchant.NewCatalog(merchants)
	require.NoError(t, err)
	return catalog
}
