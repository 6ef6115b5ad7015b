package api

import (
	"fmt"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// acceptedDateLayouts lists the forms clients send. Values without a zone
// are read as UTC.
var acceptedDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateOnlyLayout,
}

// parseDate parses an optional date parameter. An empty string yields nil.
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range acceptedDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s: expected RFC 3339 or YYYY-MM-DD, got %q", field, value)
}

// parseRangeEnd is parseDate for the closing bound of a range. A bare date
// covers that whole day.
func parseRangeEnd(field, value string) (*time.Time, error) {
	t, err := parseDate(field, value)
	if err != nil || t == nil {
		return t, err
	}
	if _, err := time.Parse(dateOnlyLayout, strings.TrimSpace(value)); err == nil {
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return &end, nil
	}
	return t, nil
}

// parseRequiredDate is parseDate for mandatory fields.
func parseRequiredDate(field, value string) (time.Time, error) {
	t, err := parseDate(field, value)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	return *t, nil
}
