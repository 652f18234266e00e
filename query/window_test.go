package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateWindowBoundsAreInclusive(t *testing.T) {
	d := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	min, max := DateWindow(d, 2)

	assert.Equal(t, time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC), min)
	assert.Equal(t, time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC), max)
}

func TestDateWindowCrossesMonthBoundary(t *testing.T) {
	d := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	min, max := DateWindow(d, 2)

	assert.Equal(t, time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC), min)
	assert.Equal(t, time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC), max)
}

func TestClockWindow(t *testing.T) {
	tests := []struct {
		name  string
		hhmm  string
		delta time.Duration
		lo    string
		hi    string
	}{
		{"mid day", "10:00", 30 * time.Minute, "09:30", "10:30"},
		{"keeps zero padding", "09:05", 30 * time.Minute, "08:35", "09:35"},
		{"clamps at start of day", "00:15", 30 * time.Minute, "00:00", "00:45"},
		{"clamps at end of day", "23:45", 30 * time.Minute, "23:15", "23:59"},
		{"exactly midnight", "00:30", 30 * time.Minute, "00:00", "01:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, err := ClockWindow(tt.hhmm, tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestClockWindowRejectsBadInput(t *testing.T) {
	for _, bad := range []string{"", "9:00:00", "25:00", "noon"} {
		_, _, err := ClockWindow(bad, 30*time.Minute)
		assert.Error(t, err, bad)
	}
}
