package fraud

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/errors"
	"github.com/davidleathers/transaction-synthesis-engine/internal/service/sampling"
)

// Injector decides, per customer and per run, whether and when anomalous
// transactions occur. The probability and policy come from run
// configuration; nothing here is hardcoded into the sampling path.
type Injector struct {
	probability float64
	policy      Policy
}

// NewInjector builds an injector. Probability is the fraction of customers
// (window policy) or transactions (transaction policy) that go bad.
func NewInjector(probability float64, policy Policy) (*Injector, error) {
	if probability < 0 || probability > 1 {
		return nil, errors.NewConfigurationError("INVALID_FRAUD_PROBABILITY",
			fmt.Sprintf("fraud probability %.4f outside [0,1]", probability))
	}
	switch policy {
	case PolicyWindow, PolicyTransaction:
	default:
		return nil, errors.NewConfigurationError("INVALID_FRAUD_POLICY",
			fmt.Sprintf("unknown fraud policy %q", policy))
	}
	return &Injector{probability: probability, policy: policy}, nil
}

// Policy returns the configured injection policy.
func (i *Injector) Policy() Policy {
	return i.policy
}

// Probability returns the configured fraud probability.
func (i *Injector) Probability() float64 {
	return i.probability
}

// PlanWindow runs the once-per-customer Bernoulli trial and, on success,
// draws one window: length uniform in [MinWindowDays, MaxWindowDays] and
// start uniform within the range, clamped so the window fits. Returns nil
// when the customer stays clean or the policy is per-transaction.
func (i *Injector) PlanWindow(rng *rand.Rand, customerID uuid.UUID, start, end time.Time) (*Window, error) {
	start = sampling.Midnight(start)
	end = sampling.Midnight(end)
	rangeDays := int(end.Sub(start).Hours()/24) + 1
	if rangeDays <= 0 {
		return nil, errors.NewRangeError("EMPTY_DATE_RANGE",
			"date range has non-positive length").WithDetails(map[string]interface{}{
			"customer_id": customerID.String(),
		})
	}

	if i.policy != PolicyWindow {
		return nil, nil
	}
	if rng.Float64() >= i.probability {
		return nil, nil
	}

	length := MinWindowDays + rng.Intn(MaxWindowDays-MinWindowDays+1)
	if length > rangeDays {
		length = rangeDays
	}
	offset := rng.Intn(rangeDays - length + 1)
	ws := start.AddDate(0, 0, offset)
	return &Window{
		CustomerID: customerID,
		Start:      ws,
		End:        ws.AddDate(0, 0, length-1),
	}, nil
}

// DrawTransaction runs the per-transaction Bernoulli trial. Always false
// under the window policy: windowed customers never mix in scattered
// fraud.
func (i *Injector) DrawTransaction(rng *rand.Rand) bool {
	if i.policy != PolicyTransaction {
		return false
	}
	return rng.Float64() < i.probability
}
