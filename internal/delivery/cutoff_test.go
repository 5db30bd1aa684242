package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCutoff(t *testing.T) {
	tests := []struct {
		in     string
		hour   int
		minute int
	}{
		{"2:00 PM", 14, 0},
		{"2:30 PM", 14, 30},
		{"12:00 PM", 12, 0},
		{"12:00 AM", 0, 0},
		{"12:45 AM", 0, 45},
		{"6:00 AM", 6, 0},
		{"11:59 PM", 23, 59},
		{"9:15 am", 9, 15},
	}
	for _, tc := range tests {
		h, m := ParseCutoff(tc.in)
		assert.Equal(t, tc.hour, h, "hour of %q", tc.in)
		assert.Equal(t, tc.minute, m, "minute of %q", tc.in)
	}
}

func TestParseCutoffLenient(t *testing.T) {
	// Malformed input must not fail, just degrade to zeroes.
	tests := []struct {
		in     string
		hour   int
		minute int
	}{
		{"", 0, 0},
		{"garbage", 0, 0},
		{"5", 5, 0},
		{"5 PM", 17, 0},
		{"5:xx PM", 17, 0},
		{"12", 12, 0},
	}
	for _, tc := range tests {
		h, m := ParseCutoff(tc.in)
		assert.Equal(t, tc.hour, h, "hour of %q", tc.in)
		assert.Equal(t, tc.minute, m, "minute of %q", tc.in)
	}
}

func TestCutoffOn(t *testing.T) {
	date := time.Date(2024, time.January, 1, 10, 30, 45, 0, time.UTC)
	got := CutoffOn("2:00 PM", date)
	assert.Equal(t, time.Date(2024, time.January, 1, 14, 0, 0, 0, time.UTC), got)
}
