package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/customer"
)

var customerHeader = []string{
	"id", "first_name", "last_name", "gender", "age",
	"city", "state", "home_lat", "home_long", "segment", "profile",
}

// LoadCustomers reads the customer list produced by the demographic
// generator. IDs come from the file, not from this loader, so repeated
// runs over the same list stay byte-identical downstream.
func LoadCustomers(path string) ([]*customer.Customer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening customers file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading customers file %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("customers file %s is empty", path)
	}
	if err := checkHeader(rows[0], customerHeader); err != nil {
		return nil, fmt.Errorf("customers file %s: %w", path, err)
	}

	customers := make([]*customer.Customer, 0, len(rows)-1)
	for i, row := range rows[1:] {
		c, err := parseCustomer(row)
		if err != nil {
			return nil, fmt.Errorf("customers file %s row %d: %w", path, i+2, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func parseCustomer(row []string) (*customer.Customer, error) {
	id, err := uuid.Parse(row[0])
	if err != nil {
		return nil, fmt.Errorf("bad id: %w", err)
	}
	gender, err := customer.ParseGender(row[3])
	if err != nil {
		return nil, err
	}
	age, err := strconv.Atoi(row[4])
	if err != nil {
		return nil, fmt.Errorf("bad age: %w", err)
	}
	lat, err := strconv.ParseFloat(row[7], 64)
	if err != nil {
		return nil, fmt.Errorf("bad home_lat: %w", err)
	}
	long, err := strconv.ParseFloat(row[8], 64)
	if err != nil {
		return nil, fmt.Errorf("bad home_long: %w", err)
	}
	segment, err := customer.ParseSegment(row[9])
	if err != nil {
		return nil, err
	}

	if row[1] == "" || row[2] == "" {
		return nil, fmt.Errorf("customer name cannot be empty")
	}
	if row[10] == "" {
		return nil, fmt.Errorf("customer has no assigned profile")
	}
	return &customer.Customer{
		ID:          id,
		FirstName:   row[1],
		LastName:    row[2],
		Gender:      gender,
		Age:         age,
		City:        row[5],
		State:       row[6],
		HomeLat:     lat,
		HomeLong:    long,
		Segment:     segment,
		ProfileName: row[10],
	}, nil
}
