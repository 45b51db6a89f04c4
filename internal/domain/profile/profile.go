package profile

import (
	"fmt"
	"time"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/errors"
)

// Profile is a named configuration bundle describing how one demographic
// segment spends: when (date weights), on what (category weights), how much
// (per-category amount parameters), and where (travel parameters).
type Profile struct {
	Name            string
	DateWeights     DateWeights
	CategoryWeights map[string]float64
	CategoryAmounts map[string]AmountParams
	TravelPct       float64
	TravelMaxDist   float64
	TxPerDay        Range

	// Fraud is the paired fraud profile, resolved by the Store at load time.
	// Nil on fraud profiles themselves.
	Fraud *Profile
}

// DateWeights drives the temporal distribution of transactions.
type DateWeights struct {
	// DayOfWeek weights, Monday first.
	DayOfWeek [7]float64
	// Seasons are named month-day intervals with their own weight. When a
	// day falls inside more than one season, the first declared match wins.
	Seasons []SeasonWeight
	// AMPM holds the AM weight at index 0 and the PM weight at index 1.
	AMPM [2]float64
}

// SeasonWeight is a year-independent month-day interval with a weight.
// Intervals may wrap the year end (e.g. Nov 25 through Jan 5).
type SeasonWeight struct {
	Name   string
	Start  MonthDay
	End    MonthDay
	Weight float64
}

// MonthDay is a calendar date without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

// AmountParams are the normal-distribution parameters for one category.
type AmountParams struct {
	Mean   float64
	StdDev float64
}

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// WeekdayWeight returns the day-of-week weight for a time.Weekday.
func (d DateWeights) WeekdayWeight(wd time.Weekday) float64 {
	// time.Weekday counts Sunday as 0; DayOfWeek is Monday-first.
	return d.DayOfWeek[(int(wd)+6)%7]
}

// SeasonalWeight returns the weight of the first declared season containing
// day, or 1.0 when no season matches. First-match-wins keeps overlapping
// declarations deterministic and the total probability mass bounded.
func (d DateWeights) SeasonalWeight(day time.Time) float64 {
	for _, s := range d.Seasons {
		if s.Contains(day) {
			return s.Weight
		}
	}
	return 1.0
}

// Contains reports whether day's month-day falls inside the interval,
// honoring year-end wrapping.
func (s SeasonWeight) Contains(day time.Time) bool {
	md := MonthDay{Month: day.Month(), Day: day.Day()}
	if !s.Start.After(s.End) {
		return !md.Before(s.Start) && !md.After(s.End)
	}
	// Wrapping interval, e.g. Nov 25 .. Jan 5.
	return !md.Before(s.Start) || !md.After(s.End)
}

// Before reports whether m is strictly earlier in the year than other.
func (m MonthDay) Before(other MonthDay) bool {
	if m.Month != other.Month {
		return m.Month < other.Month
	}
	return m.Day < other.Day
}

// After reports whether m is strictly later in the year than other.
func (m MonthDay) After(other MonthDay) bool {
	return other.Before(m)
}

func (m MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(m.Month), m.Day)
}

// ParseMonthDay parses "MM-DD" into a MonthDay.
func ParseMonthDay(s string) (MonthDay, error) {
	var month, day int
	if _, err := fmt.Sscanf(s, "%d-%d", &month, &day); err != nil {
		return MonthDay{}, fmt.Errorf("invalid month-day %q: %w", s, err)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return MonthDay{}, fmt.Errorf("invalid month-day %q", s)
	}
	return MonthDay{Month: time.Month(month), Day: day}, nil
}

// Validate checks every invariant the samplers depend on. An all-zero
// weight map has no valid sampling target and must fail here rather than
// degrade silently during generation.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.NewConfigurationError("MISSING_NAME", "profile has no name")
	}
	if err := validateWeights(p.DateWeights.DayOfWeek[:], "day_of_week"); err != nil {
		return p.annotate(err)
	}
	if err := validateWeights(p.DateWeights.AMPM[:], "am_pm"); err != nil {
		return p.annotate(err)
	}
	for _, s := range p.DateWeights.Seasons {
		if s.Name == "" {
			return p.annotate(errors.NewConfigurationError("UNNAMED_SEASON", "seasonal interval has no name"))
		}
		if s.Weight < 0 {
			return p.annotate(errors.NewConfigurationError("NEGATIVE_WEIGHT",
				fmt.Sprintf("season %q has negative weight", s.Name)))
		}
	}
	if len(p.CategoryWeights) == 0 {
		return p.annotate(errors.NewConfigurationError("MISSING_CATEGORIES", "profile has no category weights"))
	}
	var nonZero bool
	for cat, w := range p.CategoryWeights {
		if w < 0 {
			return p.annotate(errors.NewConfigurationError("NEGATIVE_WEIGHT",
				fmt.Sprintf("category %q has negative weight", cat)))
		}
		if w > 0 {
			nonZero = true
		}
		amt, ok := p.CategoryAmounts[cat]
		if !ok {
			return p.annotate(errors.NewConfigurationError("MISSING_AMOUNT_PARAMS",
				fmt.Sprintf("category %q has no amount parameters", cat)))
		}
		if amt.StdDev < 0 {
			return p.annotate(errors.NewConfigurationError("NEGATIVE_STDDEV",
				fmt.Sprintf("category %q has negative stdev", cat)))
		}
	}
	if !nonZero {
		return p.annotate(errors.NewConfigurationError("ZERO_WEIGHTS", "category weight map is all zero"))
	}
	if p.TravelPct < 0 || p.TravelPct > 100 {
		return p.annotate(errors.NewConfigurationError("INVALID_TRAVEL_PCT",
			fmt.Sprintf("travel_pct %.2f outside [0,100]", p.TravelPct)))
	}
	if p.TravelMaxDist <= 0 {
		return p.annotate(errors.NewConfigurationError("INVALID_TRAVEL_DIST",
			fmt.Sprintf("travel_max_dist %.2f must be positive", p.TravelMaxDist)))
	}
	if p.TxPerDay.Min < 0 {
		return p.annotate(errors.NewRangeError("NEGATIVE_TX_RANGE", "transactions-per-day min is negative"))
	}
	if p.TxPerDay.Min > p.TxPerDay.Max {
		return p.annotate(errors.NewRangeError("INVERTED_TX_RANGE", "transactions-per-day min exceeds max"))
	}
	return nil
}

func (p *Profile) annotate(err *errors.AppError) error {
	return err.WithDetails(map[string]interface{}{"profile": p.Name})
}

func validateWeights(weights []float64, field string) *errors.AppError {
	var nonZero bool
	for _, w := range weights {
		if w < 0 {
			return errors.NewConfigurationError("NEGATIVE_WEIGHT",
				fmt.Sprintf("%s weight map has a negative entry", field))
		}
		if w > 0 {
			nonZero = true
		}
	}
	if !nonZero {
		return errors.NewConfigurationError("ZERO_WEIGHTS",
			fmt.Sprintf("%s weight map is all zero", field))
	}
	return nil
}
