package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DisplayDateLayout is the layout of dates in API responses ("Mon Jan 15 2023").
const DisplayDateLayout = "Mon Jan 02 2006"

// acceptedDateLayouts lists the input formats understood by ParseDate,
// most specific first.
var acceptedDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
	DisplayDateLayout,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// CalendarDate truncates t to midnight UTC of its UTC calendar day.
func CalendarDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date using DisplayDateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DisplayDateLayout)
}

// ParseDate parses a user-supplied date string into a calendar date.
// Values carrying a time of day or offset are converted to UTC first.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, NewValidationError("date", "is required", ErrEmptyDate)
	}

	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return CalendarDate(t), nil
		}
	}

	return time.Time{}, NewValidationError("date", "has invalid format", ErrInvalidDate)
}

// ParseDuration coerces a duration field to whole minutes.
// Fractional values are truncated toward zero. Values must fit the 32-bit
// duration column.
func ParseDuration(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, NewValidationError("duration", "is required", ErrInvalidDuration)
	}

	if n, err := strconv.ParseInt(value, 10, 32); err == nil {
		return int(n), nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, NewValidationError("duration", "must be a number", ErrInvalidDuration)
	}

	return int(f), nil
}

// ParseLimit interprets a log limit. Anything that is not a positive
// integer means "no limit" and yields 0.
func ParseLimit(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
