package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// TripRequest is a validated, normalized trip description.
type TripRequest struct {
	Origin       CountryCode
	Destination  CountryCode
	DurationDays int
	Purpose      Purpose
	// RawPurpose keeps the caller's wording for display ("family visit", "Conference").
	RawPurpose string
}

// NewTripRequest normalizes the caller's fields and validates the duration.
// An empty purpose defaults to tourism.
func NewTripRequest(from, to string, duration any, purpose string) (TripRequest, error) {
	var err error
	for _, f := range []struct {
		name string
		v    *string
	}{{FieldFromCountry, &from}, {FieldToCountry, &to}, {FieldTripPurpose, &purpose}} {
		if *f.v, err = SanitizeField(f.name, *f.v); err != nil {
			return TripRequest{}, err
		}
	}

	days, err := ParseDuration(duration)
	if err != nil {
		return TripRequest{}, err
	}

	raw := strings.ToLower(strings.TrimSpace(purpose))
	if raw == "" {
		raw = string(PurposeTourism)
	}

	return TripRequest{
		Origin:       NormalizeCountry(from),
		Destination:  NormalizeCountry(to),
		DurationDays: days,
		Purpose:      ParsePurpose(raw),
		RawPurpose:   raw,
	}, nil
}

// Info returns the display echo of the request.
func (r TripRequest) Info() TripInfo {
	return TripInfo{
		FromCountry:  r.Origin.Display(),
		ToCountry:    r.Destination.Display(),
		DurationDays: r.DurationDays,
		Purpose:      TitleCase(strings.ReplaceAll(r.RawPurpose, "_", " ")),
	}
}

// Key returns a stable identifier for the normalized request, suitable for caching.
// Each field is length-prefixed so free-text values containing the separator cannot collide.
func (r TripRequest) Key() string {
	var sb strings.Builder
	for _, f := range []string{
		string(r.Origin),
		string(r.Destination),
		strconv.Itoa(r.DurationDays),
		r.RawPurpose,
	} {
		sb.WriteString(strconv.Itoa(len(f)))
		sb.WriteByte(':')
		sb.WriteString(f)
		sb.WriteByte('|')
	}
	return sb.String()
}

// ParseDuration converts a caller-supplied duration into a positive number of days.
// Integers, whole-valued floats, json.Number and base-10 integer strings are accepted.
// Fractions, non-numeric text and values below one are rejected, never rounded.
func ParseDuration(v any) (int, error) {
	var (
		days int64
		ok   bool
	)

	switch d := v.(type) {
	case int:
		days, ok = int64(d), true
	case int8:
		days, ok = int64(d), true
	case int16:
		days, ok = int64(d), true
	case int32:
		days, ok = int64(d), true
	case int64:
		days, ok = d, true
	case uint:
		days, ok = clampUint(uint64(d)), true
	case uint8:
		days, ok = int64(d), true
	case uint16:
		days, ok = int64(d), true
	case uint32:
		days, ok = int64(d), true
	case uint64:
		days, ok = clampUint(d), true
	case float32:
		days, ok = wholeFloat(float64(d))
	case float64:
		days, ok = wholeFloat(d)
	case json.Number:
		days, ok = parseIntString(d.String())
	case string:
		days, ok = parseIntString(d)
	}

	if !ok {
		return 0, durationError(v, "must be a whole number of days")
	}
	if days <= 0 {
		return 0, durationError(v, "must be greater than zero")
	}
	if days > math.MaxInt32 {
		return 0, durationError(v, "is too large")
	}
	return int(days), nil
}

func wholeFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// Out-of-range whole values still parse so the caller reports the bound they broke.
	if f > math.MaxInt32 {
		return math.MaxInt32 + 1, true
	}
	if f < math.MinInt32 {
		return math.MinInt32, true
	}
	return int64(f), true
}

// clampUint keeps out-of-range unsigned values above the bound so they report "is too large".
func clampUint(u uint64) int64 {
	if u > math.MaxInt32 {
		return math.MaxInt32 + 1
	}
	return int64(u)
}

func parseIntString(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func durationError(v any, reason string) error {
	return &ValidationError{
		Field:  FieldTripDuration,
		Value:  v,
		Reason: reason,
		Err:    ErrInvalidDuration,
	}
}
