package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/merchant"
)

// LoadMerchants reads the merchant reference set from a CSV file with
// header: name,category,lat,long.
func LoadMerchants(path string) ([]*merchant.Merchant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening merchants file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading merchants file %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("merchants file %s is empty", path)
	}
	if err := checkHeader(rows[0], []string{"name", "category", "lat", "long"}); err != nil {
		return nil, fmt.Errorf("merchants file %s: %w", path, err)
	}

	merchants := make([]*merchant.Merchant, 0, len(rows)-1)
	for i, row := range rows[1:] {
		lat, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("merchants file %s row %d: bad lat: %w", path, i+2, err)
		}
		long, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("merchants file %s row %d: bad long: %w", path, i+2, err)
		}
		m, err := merchant.NewMerchant(row[0], row[1], lat, long)
		if err != nil {
			return nil, fmt.Errorf("merchants file %s row %d: %w", path, i+2, err)
		}
		merchants = append(merchants, m)
	}
	return merchants, nil
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("expected header %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("expected header %v, got %v", want, got)
		}
	}
	return nil
}
