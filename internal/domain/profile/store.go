package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/errors"
)

// FraudPrefix qualifies the document name of a profile's fraud counterpart.
const FraudPrefix = "fraud_"

// Store holds the validated, immutable profile set for one generation run.
// Fraud pairing is resolved once at construction so a missing counterpart
// fails before any customer processing begins.
type Store struct {
	profiles map[string]*Profile
}

// NewStore validates every profile, resolves each normal profile's fraud
// counterpart by the fraud_ naming convention, and returns the read-only
// store. Any defect is a load-time failure.
func NewStore(profiles []*Profile) (*Store, error) {
	byName := make(map[string]*Profile, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("profile %q", p.Name))
		}
		if _, dup := byName[p.Name]; dup {
			return nil, errors.NewConfigurationError("DUPLICATE_PROFILE",
				fmt.Sprintf("profile %q declared twice", p.Name))
		}
		byName[p.Name] = p
	}

	for name, p := range byName {
		if strings.HasPrefix(name, FraudPrefix) {
			continue
		}
		fraud, ok := byName[FraudPrefix+name]
		if !ok {
			return nil, errors.NewConfigurationError("MISSING_FRAUD_PROFILE",
				fmt.Sprintf("profile %q has no %s%s counterpart", name, FraudPrefix, name))
		}
		p.Fraud = fraud
	}

	return &Store{profiles: byName}, nil
}

// Get returns the named profile.
func (s *Store) Get(name string) (*Profile, error) {
	p, ok := s.profiles[name]
	if !ok {
		return nil, errors.NewConfigurationError("UNKNOWN_PROFILE",
			fmt.Sprintf("profile %q not loaded", name))
	}
	return p, nil
}

// Names returns the sorted names of all normal (non-fraud) profiles.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		if !strings.HasPrefix(name, FraudPrefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of loaded profiles, fraud counterparts
// included.
func (s *Store) Len() int {
	return len(s.profiles)
}
