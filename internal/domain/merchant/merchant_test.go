package merchant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMerchant_Validation(t *testing.T) {
	tests := []struct {
		name     string
		merchant string
		category string
		lat      float64
		long     float64
		wantErr  bool
	}{
		{name: "valid", merchant: "corner_grocer", category: "grocery_pos", lat: 40.7, long: -74.0},
		{name: "empty name", merchant: "", category: "grocery_pos", wantErr: true},
		{name: "empty category", merchant: "corner_grocer", category: "", wantErr: true},
		{name: "latitude out of range", merchant: "x", category: "y", lat: 91, wantErr: true},
		{name: "longitude out of range", merchant: "x", category: "y", long: -181, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMerchant(tt.merchant, tt.category, tt.lat, tt.long)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewCatalog_OrderIndependent(t *testing.T) {
	a, err := NewMerchant("alpha_mart", "grocery_pos", 40, -74)
	require.NoError(t, err)
	b, err := NewMerchant("beta_foods", "grocery_pos", 41, -75)
	require.NoError(t, err)
	c, err := NewMerchant("fuel_stop", "gas_transport", 42, -76)
	require.NoError(t, err)

	c1, err := NewCatalog([]*Merchant{c, b, a})
	require.NoError(t, err)
	c2, err := NewCatalog([]*Merchant{a, b, c})
	require.NoError(t, err)

	// Category order is name-sorted regardless of input order, so seeded
	// index draws pick the same merchant on either catalog.
	require.Len(t, c1.ByCategory("grocery_pos"), 2)
	assert.Equal(t, "alpha_mart", c1.ByCategory("grocery_pos")[0].Name)
	assert.Equal(t, c1.ByCategory("grocery_pos")[0].Name, c2.ByCategory("grocery_pos")[0].Name)
	assert.Equal(t, c1.ByCategory("grocery_pos")[1].Name, c2.ByCategory("grocery_pos")[1].Name)
}

func TestCatalog_Lookups(t *testing.T) {
	m, err := NewMerchant("fuel_stop", "gas_transport", 42, -76)
	require.NoError(t, err)
	catalog, err := NewCatalog([]*Merchant{m})
	require.NoError(t, err)

	assert.True(t, catalog.HasCategory("gas_transport"))
	assert.False(t, catalog.HasCategory("grocery_pos"))
	assert.Empty(t, catalog.ByCategory("grocery_pos"))
	assert.Equal(t, []string{"gas_transport"}, catalog.Categories())
}

func TestNewCatalog_Empty(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.Error(t, err)
}
