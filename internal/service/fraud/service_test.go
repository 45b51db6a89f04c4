package fraud

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/davidleathers/transaction-synthesis-engine/internal/domain/errors"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewInjector_Validation(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		policy      Policy
		wantErr     bool
	}{
		{name: "valid window policy", probability: 0.01, policy: PolicyWindow},
		{name: "valid transaction policy", probability: 0.05, policy: PolicyTransaction},
		{name: "zero probability", probability: 0, policy: PolicyWindow},
		{name: "negative probability", probability: -0.1, policy: PolicyWindow, wantErr: true},
		{name: "probability above one", probability: 1.5, policy: PolicyWindow, wantErr: true},
		{name: "unknown policy", probability: 0.01, policy: Policy("scatter"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInjector(tt.probability, tt.policy)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsConfiguration(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestInjector_PlanWindow_RateConvergesToProbability(t *testing.T) {
	inj, err := NewInjector(0.01, PolicyWindow)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(73))
	start, end := day(2024, 1, 1), day(2024, 3, 31)

	const customers = 100000
	windowed := 0
	for i := 0; i < customers; i++ {
		w, err := inj.PlanWindow(rng, uuid.New(), start, end)
		require.NoError(t, err)
		if w != nil {
			windowed++
		}
	}

	// Binomial std error at p=0.01, n=100000 is ~0.0003; allow 4 sigma.
	rate := float64(windowed) / customers
	sigma := math.Sqrt(0.01 * 0.99 / customers)
	assert.InDelta(t, 0.01, rate, 4*sigma)
}

func TestInjector_PlanWindow_BoundsAndLength(t *testing.T) {
	inj, err := NewInjector(1.0, PolicyWindow)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(79))
	start, end := day(2024, 1, 1), day(2024, 1, 31)

	lengths := make(map[int]bool)
	for i := 0; i < 5000; i++ {
		w, err := inj.PlanWindow(rng, uuid.New(), start, end)
		require.NoError(t, err)
		require.NotNil(t, w)

		assert.False(t, w.Start.Before(start))
		assert.False(t, w.End.After(end))
		assert.GreaterOrEqual(t, w.Days(), MinWindowDays)
		assert.LessOrEqual(t, w.Days(), MaxWindowDays)
		lengths[w.Days()] = true
	}
	// Uniform in [1,7]: all lengths show up over 5000 trials.
	for l := MinWindowDays; l <= MaxWindowDays; l++ {
		assert.True(t, lengths[l], "length %d never drawn", l)
	}
}

func TestInjector_PlanWindow_ClampsToShortRange(t *testing.T) {
	inj, err := NewInjector(1.0, PolicyWindow)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(83))
	start, end := day(2024, 1, 1), day(2024, 1, 3)

	for i := 0; i < 1000; i++ {
		w, err := inj.PlanWindow(rng, uuid.New(), start, end)
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.LessOrEqual(t, w.Days(), 3)
		assert.False(t, w.Start.Before(start))
		assert.False(t, w.End.After(end))
	}
}

func TestInjector_PlanWindow_EmptyRange(t *testing.T) {
	inj, err := NewInjector(1.0, PolicyWindow)
	require.NoError(t, err)

	_, err = inj.PlanWindow(rand.New(rand.NewSource(89)), uuid.New(),
		day(2024, 2, 10), day(2024, 2, 1))
	require.Error(t, err)
	assert.True(t, apperrors.IsRange(err))
}

func TestInjector_PlanWindow_NilUnderTransactionPolicy(t *testing.T) {
	inj, err := NewInjector(1.0, PolicyTransaction)
	require.NoError(t, err)

	w, err := inj.PlanWindow(rand.New(rand.NewSource(97)), uuid.New(),
		day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestInjector_DrawTransaction(t *testing.T) {
	t.Run("window policy never flags transactions", func(t *testing.T) {
		inj, err := NewInjector(1.0, PolicyWindow)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(101))
		for i := 0; i < 1000; i++ {
			assert.False(t, inj.DrawTransaction(rng))
		}
	})

	t.Run("transaction policy converges to probability", func(t *testing.T) {
		inj, err := NewInjector(0.05, PolicyTransaction)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(103))
		const n = 100000
		hits := 0
		for i := 0; i < n; i++ {
			if inj.DrawTransaction(rng) {
				hits++
			}
		}
		sigma := math.Sqrt(0.05 * 0.95 / n)
		assert.InDelta(t, 0.05, float64(hits)/n, 4*sigma)
	})
}

func TestWindow_Contains(t *testing.T) {
	w := &Window{
		CustomerID: uuid.New(),
		Start:      day(2024, 1, 10),
		End:        day(2024, 1, 12),
	}

	assert.True(t, w.Contains(day(2024, 1, 10)))
	assert.True(t, w.Contains(day(2024, 1, 12).Add(23*time.Hour+59*time.Minute)))
	assert.False(t, w.Contains(day(2024, 1, 9).Add(23*time.Hour)))
	assert.False(t, w.Contains(day(2024, 1, 13)))
	assert.Equal(t, 3, w.Days())

	var nilWindow *Window
	assert.False(t, nilWindow.Contains(day(2024, 1, 10)))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("window")
	require.NoError(t, err)
	assert.Equal(t, PolicyWindow, p)

	p, err = ParsePolicy("transaction")
	require.NoError(t, err)
	assert.Equal(t, PolicyTransaction, p)

	_, err = ParsePolicy("sometimes")
	assert.Error(t, err)
}
