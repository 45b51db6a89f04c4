package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/customer"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/merchant"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/profile"
	"github.com/davidleathers/transaction-synthesis-engine/internal/infrastructure/output"
	"github.com/davidleathers/transaction-synthesis-engine/internal/metrics"
	"github.com/davidleathers/transaction-synthesis-engine/internal/service/fraud"
	"github.com/davidleathers/transaction-synthesis-engine/internal/service/stream"
)

// Orchestrator partitions the customer population into disjoint chunks and
// runs one stream builder per chunk in parallel. Chunks share only
// immutable reference data (profiles, merchants); every chunk gets its own
// random source seeded from the run seed plus the chunk index, which makes
// a re-run with identical inputs byte-identical.
type Orchestrator struct {
	profiles *profile.Store
	catalog  *merchant.Catalog
	injector *fraud.Injector
	sink     output.Sink
	metrics  *metrics.Registry
	logger   *zap.Logger

	seed   int64
	chunks int
	start  time.Time
	end    time.Time
}

// New wires an orchestrator. chunks below 1 is treated as 1.
func New(profiles *profile.Store, catalog *merchant.Catalog, injector *fraud.Injector, sink output.Sink, reg *metrics.Registry, logger *zap.Logger, seed int64, chunks int, start, end time.Time) *Orchestrator {
	if chunks < 1 {
		chunks = 1
	}
	return &Orchestrator{
		profiles: profiles,
		catalog:  catalog,
		injector: injector,
		sink:     sink,
		metrics:  reg,
		logger:   logger,
		seed:     seed,
		chunks:   chunks,
		start:    start,
		end:      end,
	}
}

// Run generates every chunk concurrently and blocks until all finish.
// Per-customer sampling errors are logged with the customer identity and
// abort only that customer; chunk-level failures (a sink that cannot open,
// a profile that fails sampler construction) are joined and returned.
func (o *Orchestrator) Run(ctx context.Context, customers []*customer.Customer) error {
	parts := Partition(customers, o.chunks)

	var wg sync.WaitGroup
	errs := make([]error, len(parts))
	for i := range parts {
		wg.Add(1)
		go func(idx int, part []*customer.Customer) {
			defer wg.Done()
			errs[idx] = o.runChunk(ctx, idx, part)
		}(i, parts[i])
	}
	wg.Wait()

	return errors.Join(errs...)
}

// runChunk drives one chunk: for every profile of the run, the matching
// customers are streamed into the (chunk, profile) partition. Profiles
// with no customers in this chunk still get their (empty) partition.
func (o *Orchestrator) runChunk(ctx context.Context, idx int, part []*customer.Customer) error {
	started := time.Now()
	logger := o.logger.With(zap.Int("chunk", idx))

	rng := rand.New(rand.NewSource(o.seed + int64(idx)))
	builder, err := stream.NewBuilder(o.profiles, o.catalog, o.injector, o.start, o.end, logger)
	if err != nil {
		return fmt.Errorf("chunk %d: %w", idx, err)
	}

	byProfile := make(map[string][]*customer.Customer)
	for _, c := range part {
		byProfile[c.ProfileName] = append(byProfile[c.ProfileName], c)
	}

	for _, name := range o.profiles.Names() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("chunk %d: %w", idx, err)
		}
		matched := byProfile[name]
		if len(matched) == 0 {
			// Expected for sparse profiles; the partition still exists.
			o.metrics.EmptyPartitions.Inc()
			logger.Warn("empty partition",
				zap.String("profile", name),
				zap.Int("customers", 0))
		}

		pw, err := o.sink.Open(idx, name)
		if err != nil {
			return fmt.Errorf("chunk %d profile %s: %w", idx, name, err)
		}
		if err := o.streamCustomers(logger, builder, rng, matched, pw); err != nil {
			pw.Close()
			return fmt.Errorf("chunk %d profile %s: %w", idx, name, err)
		}
		if err := pw.Close(); err != nil {
			return fmt.Errorf("chunk %d profile %s: closing partition: %w", idx, name, err)
		}
	}

	o.metrics.ChunkDuration.Observe(time.Since(started).Seconds())
	logger.Info("chunk complete",
		zap.Int("customers", len(part)),
		zap.Duration("elapsed", time.Since(started)))
	return nil
}

func (o *Orchestrator) streamCustomers(logger *zap.Logger, builder *stream.Builder, rng *rand.Rand, customers []*customer.Customer, pw output.PartitionWriter) error {
	for _, c := range customers {
		txs, window, err := builder.Build(rng, c)
		if err != nil {
			// Deterministic sampling: a failure here is a data defect
			// for this customer, not a transient condition. No retry.
			o.metrics.CustomersFailed.Inc()
			logger.Error("customer stream aborted",
				zap.String("customer_id", c.ID.String()),
				zap.Error(err))
			continue
		}
		if window != nil {
			o.metrics.FraudWindows.Inc()
		}
		for _, tx := range txs {
			if err := pw.Write(tx); err != nil {
				return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
			}
			o.metrics.TransactionsGenerated.Inc()
			if tx.IsFraud {
				o.metrics.FraudTransactions.Inc()
			}
		}
		o.metrics.CustomersProcessed.Inc()
	}
	return nil
}

// Partition splits customers into n contiguous chunks, sized as evenly as
// possible with the remainder spread over the leading chunks. The split is
// a pure function of input order and n, so re-runs assign identically.
func Partition(customers []*customer.Customer, n int) [][]*customer.Customer {
	if n < 1 {
		n = 1
	}
	parts := make([][]*customer.Customer, n)
	base := len(customers) / n
	rem := len(customers) % n
	offset := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		parts[i] = customers[offset : offset+size]
		offset += size
	}
	return parts
}
