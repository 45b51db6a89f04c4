package customer

import (
	"fmt"

	"github.com/google/uuid"
)

// Customer is one synthetic account holder. Customers are immutable once
// generated; during synthesis each customer is owned by exactly one chunk.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Gender    Gender    `json:"gender"`
	Age       int       `json:"age"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	HomeLat   float64   `json:"home_lat"`
	HomeLong  float64   `json:"home_long"`
	Segment   Segment   `json:"segment"`

	// ProfileName references the behavioral profile assigned by the
	// demographic generator.
	ProfileName string `json:"profile_name"`
}

type Gender int

const (
	GenderFemale Gender = iota
	GenderMale
)

func (g Gender) String() string {
	switch g {
	case GenderFemale:
		return "F"
	case GenderMale:
		return "M"
	default:
		return "unknown"
	}
}

// ParseGender parses the single-letter form used by the customer list.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "F", "f":
		return GenderFemale, nil
	case "M", "m":
		return GenderMale, nil
	default:
		return GenderFemale, fmt.Errorf("invalid gender %q", s)
	}
}

type Segment int

const (
	SegmentUrban Segment = iota
	SegmentRural
)

func (s Segment) String() string {
	switch s {
	case SegmentUrban:
		return "urban"
	case SegmentRural:
		return "rural"
	default:
		return "unknown"
	}
}

// ParseSegment parses the urban/rural marker from the customer list.
func ParseSegment(s string) (Segment, error) {
	switch s {
	case "urban":
		return SegmentUrban, nil
	case "rural":
		return SegmentRural, nil
	default:
		return SegmentUrban, fmt.Errorf("invalid segment %q", s)
	}
}

// FullName returns the display name written to output records.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// NewCustomer builds a validated customer.
func NewCustomer(firstName, lastName string, gender Gender, age int, lat, long float64, segment Segment, profileName string) (*Customer, error) {
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("customer name cannot be empty")
	}
	if age < 0 {
		return nil, fmt.Errorf("customer age cannot be negative")
	}
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("latitude %.4f outside [-90,90]", lat)
	}
	if long < -180 || long > 180 {
		return nil, fmt.Errorf("longitude %.4f outside [-180,180]", long)
	}
	if profileName == "" {
		return nil, fmt.Errorf("customer has no assigned profile")
	}
	return &Customer{
		ID:          uuid.New(),
		FirstName:   firstName,
		LastName:    lastName,
		Gender:      gender,
		Age:         age,
		HomeLat:     lat,
		HomeLong:    long,
		Segment:     segment,
		ProfileName: profileName,
	}, nil
}
