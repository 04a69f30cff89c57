// Package durations holds the millisecond constants used for cache timing configuration.
package durations

import "time"

const (
	MsPerSecond      = 1000
	SecondsPerMinute = 60
	MinutesPerHour   = 60
	HoursPerDay      = 24

	OneSecondMs = MsPerSecond
	OneMinuteMs = OneSecondMs * SecondsPerMinute
	OneHourMs   = OneMinuteMs * MinutesPerHour
	OneDayMs    = OneHourMs * HoursPerDay
)

// Milliseconds converts a millisecond count into a time.Duration
func Milliseconds(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
