package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/errors"
	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/profile"
)

// profileDocument mirrors the on-disk YAML schema of one profile.
type profileDocument struct {
	DateWt struct {
		DayOfWeek map[string]float64 `koanf:"day_of_week"`
		Seasons   []seasonDocument   `koanf:"seasons"`
		AMPM      struct {
			AM float64 `koanf:"am"`
			PM float64 `koanf:"pm"`
		} `koanf:"am_pm"`
	} `koanf:"date_wt"`
	CategoriesWt  map[string]float64        `koanf:"categories_wt"`
	CategoriesAmt map[string]amountDocument `koanf:"categories_amt"`
	TravelPct     float64                   `koanf:"travel_pct"`
	TravelMaxDist float64                   `koanf:"travel_max_dist"`
	AvgTxPerDay   struct {
		Min int `koanf:"min"`
		Max int `koanf:"max"`
	} `koanf:"avg_transactions_per_day"`
}

type seasonDocument struct {
	Name   string  `koanf:"name"`
	Start  string  `koanf:"start"`
	End    string  `koanf:"end"`
	Weight float64 `koanf:"weight"`
}

type amountDocument struct {
	Mean  float64 `koanf:"mean"`
	Stdev float64 `koanf:"stdev"`
}

var dayNames = [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// LoadProfiles reads every *.yaml / *.yml document in dir into a validated
// profile. The profile name is the file name without extension; fraud
// counterparts follow the fraud_ prefix convention and are resolved later
// by the profile store.
func LoadProfiles(dir string) ([]*profile.Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading profile dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, errors.NewConfigurationError("NO_PROFILES",
			fmt.Sprintf("no profile documents in %s", dir))
	}

	profiles := make([]*profile.Profile, 0, len(names))
	for _, fname := range names {
		p, err := loadProfile(filepath.Join(dir, fname))
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("profile document %s", fname))
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func loadProfile(path string) (*profile.Profile, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	var doc profileDocument
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := &profile.Profile{
		Name:            name,
		CategoryWeights: doc.CategoriesWt,
		CategoryAmounts: make(map[string]profile.AmountParams, len(doc.CategoriesAmt)),
		TravelPct:       doc.TravelPct,
		TravelMaxDist:   doc.TravelMaxDist,
		TxPerDay:        profile.Range{Min: doc.AvgTxPerDay.Min, Max: doc.AvgTxPerDay.Max},
	}

	for i, day := range dayNames {
		w, ok := doc.DateWt.DayOfWeek[day]
		if !ok {
			return nil, errors.NewConfigurationError("MISSING_DAY_WEIGHT",
				fmt.Sprintf("day_of_week is missing %q", day))
		}
		p.DateWeights.DayOfWeek[i] = w
	}
	p.DateWeights.AMPM = [2]float64{doc.DateWt.AMPM.AM, doc.DateWt.AMPM.PM}

	for _, s := range doc.DateWt.Seasons {
		start, err := profile.ParseMonthDay(s.Start)
		if err != nil {
			return nil, errors.NewConfigurationError("INVALID_SEASON",
				fmt.Sprintf("season %q start: %v", s.Name, err))
		}
		end, err := profile.ParseMonthDay(s.End)
		if err != nil {
			return nil, errors.NewConfigurationError("INVALID_SEASON",
				fmt.Sprintf("season %q end: %v", s.Name, err))
		}
		p.DateWeights.Seasons = append(p.DateWeights.Seasons, profile.SeasonWeight{
			Name:   s.Name,
			Start:  start,
			End:    end,
			Weight: s.Weight,
		})
	}

	for cat, amt := range doc.CategoriesAmt {
		p.CategoryAmounts[cat] = profile.AmountParams{Mean: amt.Mean, StdDev: amt.Stdev}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
