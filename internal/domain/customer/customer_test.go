package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGender(t *testing.T) {
	for _, s := range []string{"F", "f"} {
		g, err := ParseGender(s)
		require.NoError(t, err)
		assert.Equal(t, GenderFemale, g)
	}
	for _, s := range []string{"M", "m"} {
		g, err := ParseGender(s)
		require.NoError(t, err)
		assert.Equal(t, GenderMale, g)
	}
	_, err := ParseGender("female")
	assert.Error(t, err)
}

func TestParseSegment(t *testing.T) {
	s, err := ParseSegment("urban")
	require.NoError(t, err)
	assert.Equal(t, SegmentUrban, s)

	s, err = ParseSegment("rural")
	require.NoError(t, err)
	assert.Equal(t, SegmentRural, s)

	_, err = ParseSegment("suburban")
	assert.Error(t, err)
}

func TestNewCustomer_Validation(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		last    string
		age     int
		lat     float64
		long    float64
		profile string
		wantErr bool
	}{
		{name: "valid", first: "Dana", last: "Whitfield", age: 37, lat: 40.7, long: -74.0, profile: "adults_urban"},
		{name: "empty first name", last: "Whitfield", age: 37, profile: "adults_urban", wantErr: true},
		{name: "negative age", first: "Dana", last: "Whitfield", age: -1, profile: "adults_urban", wantErr: true},
		{name: "latitude out of range", first: "Dana", last: "Whitfield", age: 37, lat: 91, profile: "adults_urban", wantErr: true},
		{name: "longitude out of range", first: "Dana", last: "Whitfield", age: 37, long: 181, profile: "adults_urban", wantErr: true},
		{name: "missing profile", first: "Dana", last: "Whitfield", age: 37, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(tt.first, tt.last, GenderFemale, tt.age, tt.lat, tt.long, SegmentUrban, tt.profile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Dana Whitfield", c.FullName())
			assert.NotEqual(t, "", c.ID.String())
		})
	}
}
