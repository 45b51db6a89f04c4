package sampling

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/errors"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/profile"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/transaction"
)

// CategoryAmount draws a merchant category by configured weight and a
// monetary amount from the category's normal distribution. The category
// distribution is cached at construction.
type CategoryAmount struct {
	prof *profile.Profile
	dist *Discrete[string]
}

// NewCategoryAmount builds the cached category sampler for one profile.
func NewCategoryAmount(prof *profile.Profile) (*CategoryAmount, error) {
	dist, err := NewDiscreteFromMap(prof.CategoryWeights)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("profile %q category weights", prof.Name))
	}
	return &CategoryAmount{prof: prof, dist: dist}, nil
}

// DrawCategory draws one category with probability proportional to weight.
func (s *CategoryAmount) DrawCategory(rng *rand.Rand) string {
	return s.dist.Draw(rng)
}

// DrawAmount draws Normal(mean, stdev) for the category, clips to the
// amount floor, and rounds to two decimal places.
func (s *CategoryAmount) DrawAmount(rng *rand.Rand, category string) (decimal.Decimal, error) {
	params, ok := s.prof.CategoryAmounts[category]
	if !ok {
		return decimal.Zero, errors.NewConfigurationError("MISSING_AMOUNT_PARAMS",
			fmt.Sprintf("category %q has no amount parameters", category)).
			WithDetails(map[string]interface{}{"profile": s.prof.Name})
	}
	raw := params.Mean + rng.NormFloat64()*params.StdDev
	return transaction.NewAmount(raw), nil
}
