package delivery

import (
	"strconv"
	"strings"
	"time"
)

// ParseCutoff converts a 12-hour clock string like "2:00 PM" into a
// 24-hour hour/minute pair. The parse is lenient and never fails:
// catalog data is validated upstream, so a missing period or minute
// simply falls back to zero instead of producing an error.
func ParseCutoff(s string) (hour, minute int) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, 0
	}

	parts := strings.SplitN(fields[0], ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	if len(parts) == 2 {
		minute, _ = strconv.Atoi(parts[1])
	}

	var period string
	if len(fields) > 1 {
		period = strings.ToUpper(fields[1])
	}
	if period == "PM" && hour != 12 {
		hour += 12
	} else if period == "AM" && hour == 12 {
		hour = 0
	}
	return hour, minute
}

// CutoffOn places the supplier's cutoff on the given calendar date.
func CutoffOn(cutoff string, date time.Time) time.Time {
	h, m := ParseCutoff(cutoff)
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}
