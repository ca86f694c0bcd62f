package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the full UTC timestamp the registry backend expects
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DateLayout is the calendar-date layout of HTML date inputs
const DateLayout = "2006-01-02"

// NullIfEmpty returns nil for an empty (or blank) string and a pointer to s
// otherwise. The value is not trimmed.
func NullIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// ParseOptionalFloat converts a numeric form value to a number. An empty
// value yields nil; a decimal comma is accepted.
func ParseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return &v, nil
}

// ParseOptionalInt converts an integer form value. An empty value yields nil.
func ParseOptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return &v, nil
}

// ParseID converts a form or path id to an int64
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// DateToTimestamp turns a YYYY-MM-DD date into the backend's full UTC
// timestamp at midnight. An empty date yields nil.
func DateToTimestamp(date string) (*string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	ts := t.UTC().Format(TimestampLayout)
	return &ts, nil
}

// TruncateDate reduces a backend timestamp to its calendar date
func TruncateDate(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return ts[:i]
	}
	return ts
}

// FormatOptionalFloat renders a number for a form input, "" when absent
func FormatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FormatOptionalInt renders an integer for a form input, "" when absent
func FormatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
