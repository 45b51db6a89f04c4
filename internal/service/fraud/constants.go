package fraud

const (
	// DefaultProbability is the chance a customer receives a fraud window
	// (or, under the transaction policy, that a single transaction is
	// fraudulent). Overridable through run configuration.
	DefaultProbability = 0.01

	// MinWindowDays and MaxWindowDays bound the contiguous fraud burst.
	// Windows stay well below typical generation horizons so fraud never
	// spans a full range.
	MinWindowDays = 1
	MaxWindowDays = 7
)
