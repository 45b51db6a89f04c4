package stream

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/customer"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/errors"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/merchant"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/profile"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/transaction"
	"github.com/davidleathers/transaction-synthesis-engine/internal/service/fraud"
	"github.com/davidleathers/transaction-synthesis-engine/internal/service/sampling"
)

// Builder emits one customer's ordered transaction stream for a fixed date
// range. It caches per-profile samplers, so construct one Builder per chunk
// and reuse it across that chunk's customers. Builders are not safe for
// concurrent use; chunks are shared-nothing by design.
type Builder struct {
	profiles *profile.Store
	catalog  *merchant.Catalog
	injector *fraud.Injector
	start    time.Time
	end      time.Time
	logger   *zap.Logger

	sets map[string]*samplerSet
}

// samplerSet bundles the cached samplers for one profile.
type samplerSet struct {
	prof       *profile.Profile
	categories *sampling.CategoryAmount
	geo        *sampling.Geo
	temporal   *sampling.Temporal
}

// NewBuilder validates the date range and prepares the builder.
func NewBuilder(profiles *profile.Store, catalog *merchant.Catalog, injector *fraud.Injector, start, end time.Time, logger *zap.Logger) (*Builder, error) {
	start = sampling.Midnight(start)
	end = sampling.Midnight(end)
	if end.Before(start) {
		return nil, errors.NewRangeError("EMPTY_DATE_RANGE",
			"date range has non-positive length")
	}
	return &Builder{
		profiles: profiles,
		catalog:  catalog,
		injector: injector,
		start:    start,
		end:      end,
		logger:   logger,
		sets:     make(map[string]*samplerSet),
	}, nil
}

// Build plans the customer's fraud window (if any) and emits the full
// stream. Errors carry the customer identity and abort only this customer.
func (b *Builder) Build(rng *rand.Rand, cust *customer.Customer) ([]*transaction.Transaction, *fraud.Window, error) {
	window, err := b.injector.PlanWindow(rng, cust.ID, b.start, b.end)
	if err != nil {
		return nil, nil, customerErr(err, cust)
	}
	if window != nil {
		b.logger.Debug("fraud window planned",
			zap.String("customer_id", cust.ID.String()),
			zap.Time("start", window.Start),
			zap.Time("end", window.End))
	}
	txs, err := b.BuildWithWindow(rng, cust, window)
	if err != nil {
		return nil, nil, err
	}
	return txs, window, nil
}

// BuildWithWindow emits the stream for a customer with a predetermined
// fraud window (nil for a clean customer). Days inside the window draw
// every sampling decision from the paired fraud profile and are tagged;
// all other days use the normal profile. Records come back in
// non-decreasing timestamp order.
func (b *Builder) BuildWithWindow(rng *rand.Rand, cust *customer.Customer, window *fraud.Window) ([]*transaction.Transaction, error) {
	set, err := b.set(cust.ProfileName)
	if err != nil {
		return nil, customerErr(err, cust)
	}

	var txs []*transaction.Transaction

	if window == nil {
		for _, ts := range set.temporal.Schedule(rng) {
			isFraud := b.injector.DrawTransaction(rng)
			s := set
			if isFraud {
				if s, err = b.set(set.prof.Fraud.Name); err != nil {
					return nil, customerErr(err, cust)
				}
			}
			tx, err := b.compose(rng, cust, s, ts, isFraud)
			if err != nil {
				return nil, customerErr(err, cust)
			}
			txs = append(txs, tx)
		}
		sort.Stable(transaction.ByTimestamp(txs))
		return txs, nil
	}

	// Windowed customer: the normal distribution loses the window days so
	// clean draws never land inside the burst.
	normal, err := sampling.NewTemporal(set.prof, b.start, b.end, window.Contains)
	if err != nil {
		return nil, customerErr(err, cust)
	}
	for _, ts := range normal.Schedule(rng) {
		tx, err := b.compose(rng, cust, set, ts, false)
		if err != nil {
			return nil, customerErr(err, cust)
		}
		txs = append(txs, tx)
	}

	fraudSet, err := b.set(set.prof.Fraud.Name)
	if err != nil {
		return nil, customerErr(err, cust)
	}
	burst, err := sampling.NewTemporal(fraudSet.prof, window.Start, window.End, nil)
	if err != nil {
		return nil, customerErr(err, cust)
	}
	for _, ts := range burst.Schedule(rng) {
		tx, err := b.compose(rng, cust, fraudSet, ts, true)
		if err != nil {
			return nil, customerErr(err, cust)
		}
		txs = append(txs, tx)
	}

	sort.Stable(transaction.ByTimestamp(txs))
	return txs, nil
}

// compose assembles one record from the sampler outputs.
func (b *Builder) compose(rng *rand.Rand, cust *customer.Customer, set *samplerSet, ts time.Time, isFraud bool) (*transaction.Transaction, error) {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return nil, errors.NewInternalError("drawing transaction id").WithCause(err)
	}

	category := set.categories.DrawCategory(rng)
	amount, err := set.categories.DrawAmount(rng, category)
	if err != nil {
		return nil, err
	}
	lat, long := set.geo.Draw(rng, cust.HomeLat, cust.HomeLong)

	merchants := b.catalog.ByCategory(category)
	m := merchants[rng.Intn(len(merchants))]

	return &transaction.Transaction{
		ID:           id,
		Timestamp:    ts,
		CustomerID:   cust.ID,
		CustomerName: cust.FullName(),
		MerchantName: m.Name,
		Category:     category,
		Amount:       amount,
		MerchLat:     lat,
		MerchLong:    long,
		IsFraud:      isFraud,
	}, nil
}

// set returns the cached sampler set for a profile name, building it on
// first use. Category coverage against the merchant catalog is checked
// here so a bad pairing fails on the first customer, not mid-stream.
func (b *Builder) set(name string) (*samplerSet, error) {
	if s, ok := b.sets[name]; ok {
		return s, nil
	}

	prof, err := b.profiles.Get(name)
	if err != nil {
		return nil, err
	}
	for cat, w := range prof.CategoryWeights {
		if w > 0 && !b.catalog.HasCategory(cat) {
			return nil, errors.NewConfigurationError("UNKNOWN_CATEGORY",
				fmt.Sprintf("category %q has no merchants in the catalog", cat)).
				WithDetails(map[string]interface{}{"profile": name})
		}
	}

	categories, err := sampling.NewCategoryAmount(prof)
	if err != nil {
		return nil, err
	}
	temporal, err := sampling.NewTemporal(prof, b.start, b.end, nil)
	if err != nil {
		return nil, err
	}

	s := &samplerSet{
		prof:       prof,
		categories: categories,
		geo:        sampling.NewGeo(prof),
		temporal:   temporal,
	}
	b.sets[name] = s
	return s, nil
}

func customerErr(err error, cust *customer.Customer) error {
	return errors.Wrap(err, fmt.Sprintf("customer %s", cust.ID))
}
