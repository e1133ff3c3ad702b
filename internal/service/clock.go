package service

import (
	"fmt"
	"strings"
	"time"
)

// Clock returns the current time in the shop's timezone.
type Clock func() time.Time

// ClockIn reads the wall clock in loc.
func ClockIn(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// parseDate accepts RFC3339 or a bare calendar day in the clock's location.
// An empty value means now.
func parseDate(raw string, clock Clock) (time.Time, error) {
	now := clock.now()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(now.Location()), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, now.Location()); err == nil {
		return t, nil
	}
	return time.Time{}, &ValidationError{Err: ErrInvalidDate, Details: fmt.Sprintf("%q is not RFC3339 or YYYY-MM-DD", raw)}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
