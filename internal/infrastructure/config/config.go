package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/davidleathers/transaction-synthesis-engine/internal/domain/errors"
	"github.com/davidleathers/transaction-synthesis-engine/internal/service/fraud"
)

type Config struct {
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level"`

	Generation GenerationConfig `koanf:"generation"`
	Paths      PathsConfig      `koanf:"paths"`
}

type GenerationConfig struct {
	StartDate        string  `koanf:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          string  `koanf:"end_date" validate:"required,datetime=2006-01-02"`
	Chunks           int     `koanf:"chunks" validate:"min=1"`
	Seed             int64   `koanf:"seed"`
	FraudProbability float64 `koanf:"fraud_probability" validate:"min=0,max=1"`
	FraudPolicy      string  `koanf:"fraud_policy" validate:"oneof=window transaction"`
}

type PathsConfig struct {
	ProfilesDir   string `koanf:"profiles_dir" validate:"required"`
	MerchantsFile string `koanf:"merchants_file" validate:"required"`
	CustomersFile string `koanf:"customers_file" validate:"required"`
	OutputDir     string `koanf:"output_dir" validate:"required"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Load defaults
	defaults := &Config{
		Version:     "dev",
		Environment: "development",
		LogLevel:    "info",
		Generation: GenerationConfig{
			Chunks:           4,
			Seed:             42,
			FraudProbability: fraud.DefaultProbability,
			FraudPolicy:      string(fraud.PolicyWindow),
		},
		Paths: PathsConfig{
			ProfilesDir:   "configs/profiles",
			MerchantsFile: "configs/merchants.csv",
			CustomersFile: "configs/customers.csv",
			OutputDir:     "out",
		},
	}

	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// Load from config file if present
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		// Config file is optional; env and defaults still apply.
	}

	// Override with environment variables
	if err := k.Load(env.Provider("TSE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "TSE_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, apperrors.NewConfigurationError("INVALID_CONFIG",
			"run configuration failed validation").WithCause(err)
	}
	return &cfg, nil
}

// DateRange parses and orders the configured generation dates.
func (c *Config) DateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, c.Generation.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewConfigurationError("INVALID_START_DATE",
			fmt.Sprintf("start date %q is not YYYY-MM-DD", c.Generation.StartDate)).WithCause(err)
	}
	end, err := time.Parse(time.DateOnly, c.Generation.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewConfigurationError("INVALID_END_DATE",
			fmt.Sprintf("end date %q is not YYYY-MM-DD", c.Generation.EndDate)).WithCause(err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.NewRangeError("EMPTY_DATE_RANGE",
			"end date precedes start date")
	}
	return start, end, nil
}

// Policy returns the parsed fraud policy.
func (c *Config) Policy() (fraud.Policy, error) {
	return fraud.ParsePolicy(c.Generation.FraudPolicy)
}
