package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitchain/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" it returns the system's local timezone; empty means UTC.
func LoadLocation(timezone string) (*time.Location, error) {
	switch timezone {
	case "":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// TodayIn returns the calendar day (YYYY-MM-DD) of now in loc.
func TodayIn(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(constants.DateFormat)
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return TodayIn(time.Now(), loc), nil
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight UTC.
func ParseDate(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDate(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// IsValidDate reports whether day is a well-formed YYYY-MM-DD date.
func IsValidDate(day string) bool {
	_, err := time.Parse(constants.DateFormat, day)
	return err == nil
}
