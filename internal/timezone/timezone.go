package timezone

import (
	"time"

	"github.com/BruksfildServices01/bank-booking-portal/internal/calendar"
)

const DefaultTimezone = "Africa/Johannesburg"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC, when tz cannot be loaded.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Clock yields the current time in the branch timezone. Tests swap it for
// a fixed instant.
type Clock func() time.Time

func SystemClock(tz string) Clock {
	loc := Location(tz)
	return func() time.Time {
		return time.Now().In(loc)
	}
}

func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

func (c Clock) Today() calendar.Date {
	return calendar.DateOf(c())
}
