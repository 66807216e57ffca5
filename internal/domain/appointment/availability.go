package appointment

import (
	"time"

	"github.com/BruksfildServices01/bank-booking-portal/internal/calendar"
)

// Slot is one entry of the daily catalog. Available is static configuration.
type Slot struct {
	Time      calendar.TimeOfDay `json:"time"`
	Available bool               `json:"available"`
}

type SlotAvailability struct {
	Slot
	Selectable bool `json:"selectable"`
}

// SlotSelectable: a slot is selectable when it is available and, for today,
// strictly later than the current wall-clock time. now must already be in
// the branch timezone.
func SlotSelectable(slot Slot, date calendar.Date, now time.Time) bool {
	if !slot.Available {
		return false
	}
	if date == calendar.DateOf(now) && slot.Time <= calendar.Clock(now) {
		return false
	}
	return true
}

func FilterSlots(catalog []Slot, date calendar.Date, now time.Time) []SlotAvailability {
	out := make([]SlotAvailability, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, SlotAvailability{
			Slot:       s,
			Selectable: SlotSelectable(s, date, now),
		})
	}
	return out
}

// FindSlot looks up t in the catalog.
func FindSlot(catalog []Slot, t calendar.TimeOfDay) (Slot, bool) {
	for _, s := range catalog {
		if s.Time == t {
			return s, true
		}
	}
	return Slot{}, false
}

// TimeSelectable combines catalog membership with SlotSelectable.
func TimeSelectable(catalog []Slot, date calendar.Date, t calendar.TimeOfDay, now time.Time) bool {
	slot, ok := FindSlot(catalog, t)
	return ok && SlotSelectable(slot, date, now)
}

// DateSelectable rejects past dates and weekends.
func DateSelectable(date calendar.Date, now time.Time) bool {
	if date.IsZero() || date.Before(calendar.DateOf(now)) {
		return false
	}
	return !date.IsWeekend()
}
