package utils

import "time"

// IsPrimeTime reports whether t falls into the 19:00-22:59 local slot, when
// live audiences peak.
func IsPrimeTime(t time.Time) bool {
	hour := t.Hour()
	return hour >= 19 && hour <= 22
}

// FormatDuration renders a duration as a compact human string for log and
// recommendation output.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return d.Round(time.Second).String()
	}
	return d.Round(time.Minute).String()
}
