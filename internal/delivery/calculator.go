package delivery

import (
	"strings"
	"time"

	"wholesale/internal/models"
)

// DailySentinel in a supplier's delivery-day set means every day.
const DailySentinel = "daily"

// Window is a start/end pair of delivery instants. Start == End marks
// a single-day delivery rather than a range.
type Window struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	DayOfWeek string    `json:"day_of_week"`
}

// SupplierDelivery ties a supplier to its computed next delivery date.
type SupplierDelivery struct {
	SupplierID   string    `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	Date         time.Time `json:"delivery_date"`
	Window       Window    `json:"delivery_window"`
}

// deliversDaily reports whether the set should be treated as every-day
// delivery: either the explicit sentinel, or six or more distinct
// weekdays configured. The six-day rule comes from the storefront this
// replaces and is kept for parity even though it collapses a supplier
// that skips one weekday into a daily one.
func deliversDaily(days []string) bool {
	distinct := make(map[string]struct{}, len(days))
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == DailySentinel {
			return true
		}
		distinct[d] = struct{}{}
	}
	return len(distinct) >= 6
}

// NextDeliveryDate computes the single next feasible delivery date for
// a supplier relative to now. It is a pure function of its arguments.
//
// Daily suppliers deliver today unless now is past today's cutoff, in
// which case tomorrow. Suppliers with specific days get the earliest
// upcoming occurrence of any configured day; an occurrence falling on
// today whose cutoff has already passed is pushed to the same weekday
// next week, never to a nearer different weekday.
//
// An empty delivery-day set yields now itself. That is a sentinel for
// an unknown schedule, not a commitment callers should surface.
func NextDeliveryDate(s models.Supplier, now time.Time) time.Time {
	if deliversDaily(s.DeliveryDays) {
		if now.After(CutoffOn(s.CutoffTime, now)) {
			return Midnight(now).AddDate(0, 0, 1)
		}
		return Midnight(now)
	}

	if len(s.DeliveryDays) == 0 {
		return now
	}

	var earliest time.Time
	for _, day := range s.DeliveryDays {
		candidate := NextOccurrence(day, now)
		if SameDay(candidate, now) && now.After(CutoffOn(s.CutoffTime, now)) {
			candidate = candidate.AddDate(0, 0, 7)
		}
		if earliest.IsZero() || candidate.Before(earliest) {
			earliest = candidate
		}
	}
	return earliest
}

// SupplierDeliveries computes one SupplierDelivery per supplier, each
// wrapping its date in a point window.
func SupplierDeliveries(suppliers []models.Supplier, now time.Time) []SupplierDelivery {
	deliveries := make([]SupplierDelivery, 0, len(suppliers))
	for _, s := range suppliers {
		date := NextDeliveryDate(s, now)
		deliveries = append(deliveries, SupplierDelivery{
			SupplierID:   s.ID,
			SupplierName: s.Name,
			Date:         date,
			Window: Window{
				Start:     date,
				End:       date,
				DayOfWeek: date.Weekday().String(),
			},
		})
	}
	return deliveries
}
