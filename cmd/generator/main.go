package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/merchant"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/profile"
	"github.com/davidleathers/transaction-synthesis-engine/internal/infrastructure/catalog"
	"github.com/davidleathers/transaction-synthesis-engine/internal/infrastructure/config"
	"github.com/davidleathers/transaction-synthesis-engine/internal/infrastructure/output"
	"github.com/davidleathers/transaction-synthesis-engine/internal/infrastructure/telemetry"
	"github.com/davidleathers/transaction-synthesis-engine/internal/metrics"
	"github.com/davidleathers/transaction-synthesis-engine/internal/service/fraud"
	"github.com/davidleathers/transaction-synthesis-engine/internal/service/orchestrator"
)

func main() {
	// Parse flags
	var (
		configPath = flag.String("config", "", "Path to configuration file")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("generation failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	start, end, err := cfg.DateRange()
	if err != nil {
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	// All reference data loads and validates before any customer work, so
	// a bad profile cannot waste partial generation.
	profiles, err := catalog.LoadProfiles(cfg.Paths.ProfilesDir)
	if err != nil {
		return err
	}
	store, err := profile.NewStore(profiles)
	if err != nil {
		return err
	}
	merchants, err := catalog.LoadMerchants(cfg.Paths.MerchantsFile)
	if err != nil {
		return err
	}
	cat, err := merchant.NewCatalog(merchants)
	if err != nil {
		return err
	}
	customers, err := catalog.LoadCustomers(cfg.Paths.CustomersFile)
	if err != nil {
		return err
	}

	injector, err := fraud.NewInjector(cfg.Generation.FraudProbability, policy)
	if err != nil {
		return err
	}
	sink, err := output.NewCSVSink(cfg.Paths.OutputDir)
	if err != nil {
		return err
	}
	reg := metrics.NewRegistry()

	logger.Info("starting generation",
		zap.Int("customers", len(customers)),
		zap.Int("profiles", len(store.Names())),
		zap.Int("chunks", cfg.Generation.Chunks),
		zap.Int64("seed", cfg.Generation.Seed),
		zap.String("start", cfg.Generation.StartDate),
		zap.String("end", cfg.Generation.EndDate),
		zap.Float64("fraud_probability", cfg.Generation.FraudProbability),
		zap.String("fraud_policy", string(policy)))

	orch := orchestrator.New(store, cat, injector, sink, reg, logger,
		cfg.Generation.Seed, cfg.Generation.Chunks, start, end)
	if err := orch.Run(context.Background(), customers); err != nil {
		return err
	}

	logger.Info("generation complete", zap.String("output_dir", cfg.Paths.OutputDir))
	return nil
}
