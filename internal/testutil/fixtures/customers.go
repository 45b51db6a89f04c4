package fixtures

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/customer"
)

// CustomerBuilder builds test Customer entities
type CustomerBuilder struct {
	t           *testing.T
	id          uuid.UUID
	firstName   string
	lastName    string
	gender      customer.Gender
	age         int
	homeLat     float64
	homeLong    float64
	segment     customer.Segment
	profileName string
}

// NewCustomerBuilder creates a new CustomerBuilder with defaults
func NewCustomerBuilder(t *testing.T) *CustomerBuilder {
	t.Helper()
	id, err := uuid.NewRandom()
	require.NoError(t, err)

	return &CustomerBuilder{
		t:           t,
		id:          id,
		firstName:   "Dana",
		lastName:    "Whitfield",
		gender:      customer.GenderFemale,
		age:         37,
		homeLat:     40.7128,
		homeLong:    -74.0060,
		segment:     customer.SegmentUrban,
		profileName: "adults_urban",
	}
}

// WithID sets the customer ID
func (b *CustomerBuilder) WithID(id uuid.UUID) *CustomerBuilder {
	b.id = id
	return b
}

// WithName sets first and last name
func (b *CustomerBuilder) WithName(first, last string) *CustomerBuilder {
	b.firstName = first
	b.lastName = last
	return b
}

// WithHome sets the home coordinates
func (b *CustomerBuilder) WithHome(lat, long float64) *CustomerBuilder {
	b.homeLat = lat
	b.homeLong = long
	return b
}

// WithProfile sets the assigned profile name
func (b *CustomerBuilder) WithProfile(name string) *CustomerBuilder {
	b.profileName = name
	return b
}

// WithSegment sets the urban/rural segment
func (b *CustomerBuilder) WithSegment(segment customer.Segment) *CustomerBuilder {
	b.segment = segment
	return b
}

// Build creates the Customer entity
func (b *CustomerBuilder) Build() *customer.Customer {
	return &customer.Customer{
		ID:          b.id,
		FirstName:   b.firstName,
		LastName:    b.lastName,
		Gender:      b.gender,
		Age:         b.age,
		HomeLat:     b.homeLat,
		HomeLong:    b.homeLong,
		Segment:     b.segment,
		ProfileName: b.profileName,
	}
}

// CustomerSet creates count customers sharing one profile, with IDs that
// are stable across test runs.
func CustomerSet(t *testing.T, count int, profileName string) []*customer.Customer {
	t.Helper()
	customers := make([]*customer.Customer, count)
	for i := 0; i < count; i++ {
		customers[i] = NewCustomerBuilder(t).
			WithID(uuid.NewMD5(uuid.NameSpaceOID, []byte{byte(i), byte(i >> 8), byte(i >> 16)})).
			WithProfile(profileName).
			Build()
	}
	return customers
}
