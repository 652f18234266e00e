package query

import (
	"fmt"
	"time"
)

// DateWindow returns the closed [min, max] date interval of days around d.
// Records exactly on a bound match.
func DateWindow(d time.Time, days int) (time.Time, time.Time) {
	return d.AddDate(0, 0, -days), d.AddDate(0, 0, days)
}

// ClockWindow widens an "HH:MM" clock value by delta on each side and
// returns the bounds in the same zero-padded format, clamped to the day so
// the interval never wraps. Zero-padded HH:MM compares correctly as text.
func ClockWindow(hhmm string, delta time.Duration) (string, string, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return "", "", fmt.Errorf("invalid time %q: %w", hhmm, err)
	}

	min := t.Add(-delta)
	max := t.Add(delta)

	lo := min.Format("15:04")
	if min.Day() != t.Day() {
		lo = "00:00"
	}
	hi := max.Format("15:04")
	if max.Day() != t.Day() {
		hi = "23:59"
	}
	return lo, hi, nil
}
