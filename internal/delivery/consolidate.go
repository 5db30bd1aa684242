package delivery

import "time"

// Consolidate folds per-supplier delivery dates into the span from the
// earliest to the latest. An empty input yields a degenerate point
// window at now so the caller always has something to render.
func Consolidate(deliveries []SupplierDelivery, now time.Time) Window {
	if len(deliveries) == 0 {
		return Window{Start: now, End: now, DayOfWeek: now.Weekday().String()}
	}

	start, end := deliveries[0].Date, deliveries[0].Date
	for _, d := range deliveries[1:] {
		if d.Date.Before(start) {
			start = d.Date
		}
		if d.Date.After(end) {
			end = d.Date
		}
	}
	return Window{Start: start, End: end, DayOfWeek: start.Weekday().String()}
}

// FormatWindow renders a window for display: a long-form single date
// when start and end share a calendar day, otherwise a short-form
// range. Downstream snapshots depend on these exact layouts.
func FormatWindow(w Window) string {
	if SameDay(w.Start, w.End) {
		return w.Start.Format("Monday, Jan 2")
	}
	return w.Start.Format("Mon, Jan 2") + " - " + w.End.Format("Mon, Jan 2")
}
