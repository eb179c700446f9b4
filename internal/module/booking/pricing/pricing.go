package pricing

import (
	"fmt"
	"hotel-booking-service/internal/pkg/errors"
	"math"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type Stay struct {
	CheckIn    time.Time
	CheckOut   time.Time
	Nights     int
	TotalPrice float64
}

// ComputeStay prices a stay at the given nightly rate. Partial days round up and a stay is never
// billed below one night.
func ComputeStay(checkIn string, checkOut string, nightlyRate float64) (Stay, error) {
	in, err := parseDate(checkIn)
	if err != nil {
		return Stay{}, errors.InvalidDateRange(fmt.Sprintf("invalid check-in date %q", checkIn))
	}
	out, err := parseDate(checkOut)
	if err != nil {
		return Stay{}, errors.InvalidDateRange(fmt.Sprintf("invalid check-out date %q", checkOut))
	}
	if !in.Before(out) {
		return Stay{}, errors.InvalidDateRange("check-in must be before check-out")
	}
	if nightlyRate <= 0 || math.IsNaN(nightlyRate) || math.IsInf(nightlyRate, 0) {
		return Stay{}, errors.ValidationError("nightly rate must be greater than zero")
	}

	nights := Nights(in, out)

	return Stay{
		CheckIn:    in,
		CheckOut:   out,
		Nights:     nights,
		TotalPrice: round2(float64(nights) * nightlyRate),
	}, nil
}

func Nights(checkIn time.Time, checkOut time.Time) int {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		return 1
	}
	return nights
}

// MinorUnits converts a price to the integer amount the gateway expects (paise, cents).
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
