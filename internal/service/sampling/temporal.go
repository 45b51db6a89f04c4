package sampling

import (
	"math/rand"
	"time"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/errors"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/profile"
)

const (
	halfDaySeconds = 12 * 60 * 60
)

// Temporal turns a date range and a profile's date weights into a sampler
// over the calendar days actually present in the range. Per-day weight is
// the day-of-week weight multiplied by the first matching seasonal weight;
// normalization happens over the in-range subset, so ranges shorter than
// any season still sample correctly.
type Temporal struct {
	prof  *profile.Profile
	start time.Time
	end   time.Time
	days  []time.Time
	dist  *Discrete[time.Time]
}

// SkipFunc reports days the sampler must leave out of the distribution
// (e.g. days claimed by a fraud window).
type SkipFunc func(day time.Time) bool

// NewTemporal builds a day distribution over [start, end] inclusive,
// leaving out days matched by skip (which may be nil). Dates are truncated
// to UTC midnight. A reversed range is a range error; a range whose
// combined weight is zero is a configuration error.
func NewTemporal(prof *profile.Profile, start, end time.Time, skip SkipFunc) (*Temporal, error) {
	start = Midnight(start)
	end = Midnight(end)
	if end.Before(start) {
		return nil, errors.NewRangeError("EMPTY_DATE_RANGE",
			"date range has non-positive length").WithDetails(map[string]interface{}{
			"start": start.Format(time.DateOnly),
			"end":   end.Format(time.DateOnly),
		})
	}

	t := &Temporal{prof: prof, start: start, end: end}

	var weights []float64
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if skip != nil && skip(day) {
			continue
		}
		t.days = append(t.days, day)
		w := prof.DateWeights.WeekdayWeight(day.Weekday()) * prof.DateWeights.SeasonalWeight(day)
		weights = append(weights, w)
	}
	if len(t.days) == 0 {
		// Every day skipped; the caller gets an empty sampler rather
		// than an error so a window covering the whole residual range
		// simply contributes nothing.
		return t, nil
	}

	dist, err := NewDiscrete(t.days, weights)
	if err != nil {
		return nil, errors.NewConfigurationError("ZERO_DATE_WEIGHTS",
			"combined date weights are zero for the entire range").WithDetails(map[string]interface{}{
			"profile": prof.Name,
			"start":   start.Format(time.DateOnly),
			"end":     end.Format(time.DateOnly),
		}).WithCause(err)
	}
	t.dist = dist
	return t, nil
}

// Days returns the number of sampleable days.
func (t *Temporal) Days() int {
	return len(t.days)
}

// DrawDay draws one calendar day with probability proportional to its
// combined weight.
func (t *Temporal) DrawDay(rng *rand.Rand) time.Time {
	return t.dist.Draw(rng)
}

// DrawCount draws a per-day transaction count, uniform and inclusive over
// the profile's configured [min, max].
func (t *Temporal) DrawCount(rng *rand.Rand) int {
	r := t.prof.TxPerDay
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// DrawTimestamp places a transaction inside day: AM or PM by the profile's
// half-day weights, then a uniform second offset within the chosen half.
func (t *Temporal) DrawTimestamp(rng *rand.Rand, day time.Time) time.Time {
	am := t.prof.DateWeights.AMPM[0]
	pm := t.prof.DateWeights.AMPM[1]
	offset := rng.Intn(halfDaySeconds)
	if rng.Float64()*(am+pm) >= am {
		offset += halfDaySeconds
	}
	return day.Add(time.Duration(offset) * time.Second)
}

// Schedule draws the full set of transaction timestamps for one customer
// over the sampler's range: every sampleable day contributes a uniform
// [min, max] count, and each transaction's day is then drawn from the
// weighted day distribution. The result is unsorted; callers order the
// composed records.
func (t *Temporal) Schedule(rng *rand.Rand) []time.Time {
	if len(t.days) == 0 {
		return nil
	}
	var out []time.Time
	for range t.days {
		n := t.DrawCount(rng)
		for i := 0; i < n; i++ {
			day := t.DrawDay(rng)
			out = append(out, t.DrawTimestamp(rng, day))
		}
	}
	return out
}

// Midnight truncates a time to its UTC calendar day.
func Midnight(ts time.Time) time.Time {
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}
