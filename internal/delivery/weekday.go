package delivery

import (
	"strings"
	"time"
)

var dayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DayNumber maps a weekday name to its ordinal, sunday=0 through
// saturday=6 (the same numbering time.Weekday uses). Unknown names
// return -1.
func DayNumber(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, d := range dayNames {
		if d == name {
			return i
		}
	}
	return -1
}

// Midnight strips the time-of-day from t, keeping its location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// NextOccurrence returns the next calendar date on or after ref that
// falls on the named weekday, truncated to midnight. The reference
// day itself counts as an occurrence; callers that care about cutoff
// times must check them separately. Unknown day names resolve to the
// reference date, keeping the function as lenient as the cutoff parse.
func NextOccurrence(dayName string, ref time.Time) time.Time {
	today := Midnight(ref)
	target := DayNumber(dayName)
	if target < 0 {
		return today
	}
	delta := (target - int(today.Weekday()) + 7) % 7
	if delta == 0 {
		return today
	}
	return today.AddDate(0, 0, delta)
}
