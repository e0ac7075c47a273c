package stats

import (
	"math"
	"time"
)

// DateKeyLayout is the layout of day keys.
const DateKeyLayout = "2006-01-02"

const day = 24 * time.Hour

// FormatDateKey returns the UTC calendar day of t as YYYY-MM-DD.
// All day bucketing goes through this function.
func FormatDateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight UTC.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, time.UTC)
}

// DaysBetween returns the absolute distance in whole days between a and b.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(math.Abs(a.Sub(b).Hours() / 24)))
}

// WeekdayName returns the English weekday name of a day key, or "" when the
// key does not parse.
func WeekdayName(key string) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
