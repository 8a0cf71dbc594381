package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: NewDate(2025, time.July, 1)},
		{in: "2025-7-1", want: NewDate(2025, time.July, 1)},
		{in: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{in: "01/07/2025", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_JSONRoundTripIgnoresTimeZone(t *testing.T) {
	// 23:30 in UTC-10 is already the next day in UTC; the date must stay put.
	loc := time.FixedZone("HST", -10*60*60)
	d := DateOf(time.Date(2025, time.March, 31, 23, 30, 0, 0, loc))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-31"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDate_Arithmetic(t *testing.T) {
	d := NewDate(2024, time.December, 31)

	assert.Equal(t, NewDate(2025, time.January, 1), d.AddDays(1))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.Equal(t, NewDate(2025, time.March, 1), NewDate(2025, time.February, 29))
	assert.True(t, Date{}.IsZero())
	assert.Equal(t, "", Date{}.String())
}
