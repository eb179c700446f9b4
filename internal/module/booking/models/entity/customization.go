package entity

import (
	"fmt"
	"hotel-booking-service/internal/pkg/errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Legacy clients send the same note under different keys. The first key present wins.
var (
	guestKeys    = []string{"guests", "guest_count", "guestCount", "numberOfGuests", "no_of_guests", "guest_range"}
	dayKeys      = []string{"days", "day_range", "dayRange", "duration"}
	includedKeys = []string{"included_items", "includedItems", "included", "includes", "inclusions"}
)

// NormalizeCustomization maps a free-form customization object into its canonical shape.
// An empty or null input yields nil.
func NormalizeCustomization(raw []byte) (*Customization, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, errors.ValidationError("customization must be a json object")
	}

	root := gjson.ParseBytes(raw)
	if root.Type == gjson.Null {
		return nil, nil
	}
	if !root.IsObject() {
		return nil, errors.ValidationError("customization must be a json object")
	}

	var c Customization

	if v, ok := first(root, guestKeys); ok {
		r, err := parseRange(v)
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("invalid guest range: %v", err))
		}
		c.Guests = r
	}

	if v, ok := first(root, dayKeys); ok {
		r, err := parseRange(v)
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("invalid day range: %v", err))
		}
		c.Days = r
	}

	if v, ok := first(root, includedKeys); ok {
		c.IncludedItems = parseItems(v)
	}

	if c.Empty() {
		return nil, nil
	}
	return &c, nil
}

func first(root gjson.Result, keys []string) (gjson.Result, bool) {
	for _, k := range keys {
		v := root.Get(k)
		if v.Exists() && v.Type != gjson.Null {
			return v, true
		}
	}
	return gjson.Result{}, false
}

func parseRange(v gjson.Result) (*Range, error) {
	var r Range
	switch {
	case v.Type == gjson.Number:
		r = Range{Min: int(v.Int()), Max: int(v.Int())}
	case v.IsArray():
		items := v.Array()
		if len(items) == 0 || len(items) > 2 {
			return nil, fmt.Errorf("expected one or two values")
		}
		r = Range{Min: int(items[0].Int()), Max: int(items[len(items)-1].Int())}
	case v.IsObject():
		lo := v.Get("min")
		if !lo.Exists() {
			lo = v.Get("from")
		}
		hi := v.Get("max")
		if !hi.Exists() {
			hi = v.Get("to")
		}
		if !lo.Exists() && !hi.Exists() {
			return nil, fmt.Errorf("expected min or max")
		}
		r = Range{Min: int(lo.Int()), Max: int(hi.Int())}
		if !lo.Exists() {
			r.Min = r.Max
		}
		if !hi.Exists() {
			r.Max = r.Min
		}
	case v.Type == gjson.String:
		parsed, err := parseRangeString(v.String())
		if err != nil {
			return nil, err
		}
		r = parsed
	default:
		return nil, fmt.Errorf("unsupported value %s", v.Raw)
	}

	if r.Min < 0 || r.Max < 0 {
		return nil, fmt.Errorf("negative value")
	}
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	return &r, nil
}

// parseRangeString accepts "3", "2-4", "2 to 4" and ignores trailing words such as "guests".
func parseRangeString(s string) (Range, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " to ", "-")

	parts := strings.SplitN(s, "-", 2)
	nums := make([]int, 0, 2)
	for _, p := range parts {
		digits := strings.TrimFunc(strings.TrimSpace(p), func(r rune) bool { return r < '0' || r > '9' })
		if end := strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }); end >= 0 {
			digits = digits[:end]
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return Range{}, fmt.Errorf("invalid number %q", p)
		}
		nums = append(nums, n)
	}

	if len(nums) == 1 {
		return Range{Min: nums[0], Max: nums[0]}, nil
	}
	return Range{Min: nums[0], Max: nums[1]}, nil
}

func parseItems(v gjson.Result) string {
	if v.IsArray() {
		items := make([]string, 0, len(v.Array()))
		for _, item := range v.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				items = append(items, s)
			}
		}
		return strings.Join(items, ", ")
	}
	return strings.TrimSpace(v.String())
}
