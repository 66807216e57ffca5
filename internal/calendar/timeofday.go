package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time in minutes since midnight.
type TimeOfDay int

// NoTime marks an unset time selection.
const NoTime TimeOfDay = -1

func At(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// Clock returns the wall-clock time of t in t's own location.
func Clock(t time.Time) TimeOfDay {
	return At(t.Hour(), t.Minute())
}

var timeLayouts = []string{"3:04 PM", "03:04 PM", "3:04PM", "15:04", "15:04:05", "3:04:05 PM"}

// ParseTimeOfDay accepts the display form ("2:30 PM") and the 24-hour form
// ("14:30", or "14:30:00" as some backends send it).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock(t), nil
		}
	}
	return NoTime, fmt.Errorf("calendar: invalid time %q", s)
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < 24*60
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String renders the display form, e.g. "9:00 AM".
func (t TimeOfDay) String() string {
	if !t.Valid() {
		return ""
	}
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC).Format("3:04 PM")
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("calendar: time must be a string: %w", err)
	}
	if s == "" {
		*t = NoTime
		return nil
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
