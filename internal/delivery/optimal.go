package delivery

import (
	"strings"
	"time"

	"wholesale/internal/models"
)

// horizonDays is the fixed lookahead for the optimal-day scan,
// counting today.
const horizonDays = 7

// availableOn reports whether the supplier delivers on the named
// weekday. Only the literal "daily" sentinel counts here; the six-day
// heuristic applies to next-date calculation, not to the horizon scan.
func availableOn(s models.Supplier, dayName string) bool {
	for _, d := range s.DeliveryDays {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == DailySentinel || d == dayName {
			return true
		}
	}
	return false
}

// OptimalDay scans the seven calendar days starting today and returns
// the one on which the most suppliers can deliver. Today only counts
// for a supplier while now is at or before its cutoff. Ties go to the
// earliest day; the second return is false when no supplier can
// deliver anywhere in the horizon.
func OptimalDay(suppliers []models.Supplier, now time.Time) (time.Time, bool) {
	var best time.Time
	bestCount := 0

	for i := 0; i < horizonDays; i++ {
		day := Midnight(now).AddDate(0, 0, i)
		dayName := strings.ToLower(day.Weekday().String())

		count := 0
		for _, s := range suppliers {
			if !availableOn(s, dayName) {
				continue
			}
			if i == 0 && now.After(CutoffOn(s.CutoffTime, day)) {
				continue
			}
			count++
		}
		if count > bestCount {
			best, bestCount = day, count
		}
	}

	if bestCount == 0 {
		return time.Time{}, false
	}
	return best, true
}
