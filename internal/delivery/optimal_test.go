package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wholesale/internal/models"
)

func TestOptimalDayPicksMostCoveredDay(t *testing.T) {
	// Three of five suppliers share friday; no other day beats that.
	suppliers := []models.Supplier{
		{ID: "1", DeliveryDays: []string{"friday"}, CutoffTime: "2:00 PM"},
		{ID: "2", DeliveryDays: []string{"friday", "tuesday"}, CutoffTime: "2:00 PM"},
		{ID: "3", DeliveryDays: []string{"friday"}, CutoffTime: "2:00 PM"},
		{ID: "4", DeliveryDays: []string{"wednesday"}, CutoffTime: "2:00 PM"},
		{ID: "5", DeliveryDays: []string{"saturday"}, CutoffTime: "2:00 PM"},
	}
	got, ok := OptimalDay(suppliers, monday)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.Friday, got.Weekday())
}

func TestOptimalDayDailySupplierCountsEveryDay(t *testing.T) {
	suppliers := []models.Supplier{
		{ID: "1", DeliveryDays: []string{"daily"}, CutoffTime: "2:00 PM"},
		{ID: "2", DeliveryDays: []string{"thursday"}, CutoffTime: "2:00 PM"},
	}
	got, ok := OptimalDay(suppliers, monday)
	assert.True(t, ok)
	// Thursday is the first day both can cover.
	assert.Equal(t, time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestOptimalDayTieGoesToEarliest(t *testing.T) {
	suppliers := []models.Supplier{
		{ID: "1", DeliveryDays: []string{"tuesday", "thursday"}, CutoffTime: "2:00 PM"},
	}
	got, ok := OptimalDay(suppliers, monday)
	assert.True(t, ok)
	assert.Equal(t, time.Tuesday, got.Weekday())
}

func TestOptimalDayTodayOnlyCountsBeforeCutoff(t *testing.T) {
	suppliers := []models.Supplier{
		{ID: "1", DeliveryDays: []string{"monday"}, CutoffTime: "2:00 PM"},
	}

	got, ok := OptimalDay(suppliers, monday)
	assert.True(t, ok)
	assert.Equal(t, Midnight(monday), got)

	// Past the cutoff today drops out; tuesday is the next covered day.
	suppliers = append(suppliers, models.Supplier{ID: "2", DeliveryDays: []string{"tuesday"}, CutoffTime: "2:00 PM"})
	pastCutoff := time.Date(2024, time.January, 1, 15, 0, 0, 0, time.UTC)
	got, ok = OptimalDay(suppliers, pastCutoff)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestOptimalDayNoneAvailable(t *testing.T) {
	_, ok := OptimalDay(nil, monday)
	assert.False(t, ok)

	// A lone monday-only supplier past its cutoff on a monday: today
	// fails the cutoff check and the next monday lands on day 7,
	// outside the 0..6 scan, so there is no recommendation at all.
	suppliers := []models.Supplier{
		{ID: "1", DeliveryDays: []string{"monday"}, CutoffTime: "2:00 PM"},
	}
	pastCutoff := time.Date(2024, time.January, 1, 15, 0, 0, 0, time.UTC)
	_, ok = OptimalDay(suppliers, pastCutoff)
	assert.False(t, ok)
}

func TestOptimalDayStaysInsideHorizon(t *testing.T) {
	suppliers := []models.Supplier{
		{ID: "1", DeliveryDays: []string{"sunday"}, CutoffTime: "2:00 PM"},
		{ID: "2", DeliveryDays: []string{"saturday"}, CutoffTime: "9:00 AM"},
	}
	for h := 0; h < 24; h += 3 {
		now := time.Date(2024, time.January, 1, h, 0, 0, 0, time.UTC)
		got, ok := OptimalDay(suppliers, now)
		if !ok {
			continue
		}
		assert.False(t, got.Before(Midnight(now)), "hour %d", h)
		assert.False(t, got.After(Midnight(now).AddDate(0, 0, 6)), "hour %d", h)
	}
}
