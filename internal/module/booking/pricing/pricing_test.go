package pricing_test

import (
	"hotel-booking-service/internal/module/booking/pricing"
	"hotel-booking-service/internal/pkg/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStay(t *testing.T) {
	testCases := []struct {
		name           string
		checkIn        string
		checkOut       string
		rate           float64
		expectedNights int
		expectedTotal  float64
	}{
		{
			name:           "two nights",
			checkIn:        "2026-03-10",
			checkOut:       "2026-03-12",
			rate:           1000,
			expectedNights: 2,
			expectedTotal:  2000,
		},
		{
			name:           "partial day rounds up",
			checkIn:        "2026-03-10T14:00:00Z",
			checkOut:       "2026-03-11T18:00:00Z",
			rate:           1500.5,
			expectedNights: 2,
			expectedTotal:  3001,
		},
		{
			name:           "sub-day span bills one night",
			checkIn:        "2026-03-10T10:00:00Z",
			checkOut:       "2026-03-10T20:00:00Z",
			rate:           999.99,
			expectedNights: 1,
			expectedTotal:  999.99,
		},
		{
			name:           "rounds to two decimals",
			checkIn:        "2026-03-10",
			checkOut:       "2026-03-13",
			rate:           33.333,
			expectedNights: 3,
			expectedTotal:  100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stay, err := pricing.ComputeStay(tc.checkIn, tc.checkOut, tc.rate)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedNights, stay.Nights)
			assert.InDelta(t, tc.expectedTotal, stay.TotalPrice, 0.001)
			assert.GreaterOrEqual(t, stay.Nights, 1)
		})
	}

	t.Run("same calendar date keeps the instants", func(t *testing.T) {
		stay, err := pricing.ComputeStay("2026-03-10T10:00:00Z", "2026-03-10T20:00:00Z", 1000)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), stay.CheckIn)
		assert.Equal(t, time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC), stay.CheckOut)
		assert.True(t, stay.CheckIn.Before(stay.CheckOut))
		assert.Equal(t, 1, stay.Nights)
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := pricing.ComputeStay("2026-01-01", "2026-01-05", 120)
		require.NoError(t, err)
		b, err := pricing.ComputeStay("2026-01-01", "2026-01-05", 120)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestComputeStayErrors(t *testing.T) {
	testCases := []struct {
		name     string
		checkIn  string
		checkOut string
		rate     float64
		kind     errors.Kind
	}{
		{name: "same day", checkIn: "2026-03-10", checkOut: "2026-03-10", rate: 1000, kind: errors.KindInvalidDateRange},
		{name: "reversed", checkIn: "2026-03-12", checkOut: "2026-03-10", rate: 1000, kind: errors.KindInvalidDateRange},
		{name: "bad check-in", checkIn: "10/03/2026", checkOut: "2026-03-12", rate: 1000, kind: errors.KindInvalidDateRange},
		{name: "bad check-out", checkIn: "2026-03-10", checkOut: "", rate: 1000, kind: errors.KindInvalidDateRange},
		{name: "zero rate", checkIn: "2026-03-10", checkOut: "2026-03-12", rate: 0, kind: errors.KindValidation},
		{name: "negative rate", checkIn: "2026-03-10", checkOut: "2026-03-12", rate: -5, kind: errors.KindValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pricing.ComputeStay(tc.checkIn, tc.checkOut, tc.rate)
			assert.True(t, errors.IsKind(err, tc.kind), "got %v", err)
		})
	}
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(200000), pricing.MinorUnits(2000))
	assert.Equal(t, int64(100001), pricing.MinorUnits(1000.01))
}
