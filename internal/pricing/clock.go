package pricing

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar-date wire format.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day wire format (24-hour).
	ClockLayout = "15:04"
)

// CombineDateTime combines a "YYYY-MM-DD" date and an "HH:MM" clock time
// into a single instant in the local time zone.
func CombineDateTime(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("combine date %q time %q: %w", date, clock, err)
	}
	return t, nil
}

// AddMinutes returns the clock time that is the given number of minutes
// after the "HH:MM" input, wrapping past midnight.
func AddMinutes(clock string, minutes int) (string, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return "", fmt.Errorf("parse clock time %q: %w", clock, err)
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format(ClockLayout), nil
}

// HoursUntil returns the number of whole hours between now and start,
// truncated toward zero. Negative when start is in the past.
func HoursUntil(start, now time.Time) int {
	return int(start.Sub(now).Hours())
}
