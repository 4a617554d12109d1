package autoevents

import (
	"strings"
	"time"
)

// NormalizeTitle is the identity used to compare event titles.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Slug replaces every character outside [a-z0-9] with '-'. Runs of dashes
// are kept as is.
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('-')
	}
	return b.String()
}

// ISODate formats the calendar date of t in its own location.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// HiddenKey derives the per-user dismissal key of a suggested event.
func HiddenKey(title string, date time.Time) string {
	return Slug(NormalizeTitle(title)) + "-" + ISODate(date)
}

// HiddenSet is the set of keys a user dismissed.
type HiddenSet map[string]struct{}

// NewHiddenSet builds a set from keys.
func NewHiddenSet(keys ...string) HiddenSet {
	set := make(HiddenSet, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}

// Has reports membership; a nil set contains nothing.
func (s HiddenSet) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s[key]
	return ok
}

// Keys returns the members in no particular order.
func (s HiddenSet) Keys() []string {
	out := make([]string, 0, len(s))
	for key := range s {
		out = append(out, key)
	}
	return out
}
