package fraud

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Window is a contiguous date interval during which every transaction for
// the customer is drawn from the paired fraud profile. At most one window
// exists per customer per generation run.
type Window struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// Contains reports whether ts falls on a day inside the window. Both
// bounds are inclusive.
func (w *Window) Contains(ts time.Time) bool {
	if w == nil {
		return false
	}
	return !ts.Before(w.Start) && ts.Before(w.End.AddDate(0, 0, 1))
}

// Days returns the window length in days.
func (w *Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Policy selects how fraud is injected into a customer's stream.
type Policy string

const (
	// PolicyWindow evaluates fraud once per customer, producing at most
	// one contiguous window. This is the default: fraud occurs in
	// concentrated time periods.
	PolicyWindow Policy = "window"

	// PolicyTransaction evaluates fraud independently per transaction,
	// producing scattered fraud records with no window.
	PolicyTransaction Policy = "transaction"
)

// ParsePolicy parses the configured policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyWindow, PolicyTransaction:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("invalid fraud policy %q", s)
	}
}
