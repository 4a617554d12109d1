package openagenda

import (
	"context"
	"regexp"
	"strings"
)

var (
	postalCityPattern = regexp.MustCompile(`\b(\d{5})\s+([^,\d]+)`)
	postalPattern     = regexp.MustCompile(`\b(\d{5})\b`)
	countrySuffix     = regexp.MustCompile(`(?i)\s+france$`)
)

// Address is what can be recovered from a free-text French address.
type Address struct {
	PostalCode string
	City       string
	Department string
}

// SearchLocation returns the term used to query events near the address:
// the city when known, otherwise the postal code.
func (a Address) SearchLocation() string {
	if a.City != "" {
		return a.City
	}
	return a.PostalCode
}

// ParseAddress extracts a city and postal code from a free-text address. It
// tries, in order: "<postal> <city>", the segment before a trailing
// "France", a bare postal code, then the first comma-separated segment.
func ParseAddress(raw string) (Address, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Address{}, false
	}

	if m := postalCityPattern.FindStringSubmatch(raw); m != nil {
		city := strings.TrimSpace(countrySuffix.ReplaceAllString(strings.TrimSpace(m[2]), ""))
		if city != "" && !strings.EqualFold(city, "france") {
			return newAddress(m[1], city), true
		}
	}

	segments := splitSegments(raw)
	if n := len(segments); n >= 2 && strings.EqualFold(segments[n-1], "france") {
		city := strings.TrimSpace(postalPattern.ReplaceAllString(segments[n-2], ""))
		if city != "" {
			return newAddress(postalPattern.FindString(raw), city), true
		}
	}

	if postal := postalPattern.FindString(raw); postal != "" {
		return newAddress(postal, ""), true
	}

	for _, segment := range segments {
		if !strings.EqualFold(segment, "france") {
			return Address{City: segment}, true
		}
	}
	return Address{}, false
}

// Department derives the French department code from a postal code.
func Department(postal string) string {
	if len(postal) != 5 {
		return ""
	}
	switch {
	case strings.HasPrefix(postal, "97"), strings.HasPrefix(postal, "98"):
		return postal[:3]
	case strings.HasPrefix(postal, "20"):
		if postal < "20200" {
			return "2A"
		}
		return "2B"
	default:
		return postal[:2]
	}
}

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// GeocodeAddress is not backed by any geocoder: it always reports that no
// coordinates are known. Lookups rely on ParseAddress instead.
func GeocodeAddress(_ context.Context, _ string) (*Coordinates, error) {
	return nil, nil
}

func newAddress(postal, city string) Address {
	return Address{PostalCode: postal, City: city, Department: Department(postal)}
}

func splitSegments(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
