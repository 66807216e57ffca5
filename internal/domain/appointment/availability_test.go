package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/bank-booking-portal/internal/calendar"
)

func TestDefaultSlotsCatalog(t *testing.T) {
	slots := DefaultSlots()
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if slots[0].Time != calendar.At(9, 0) || slots[len(slots)-1].Time != calendar.At(16, 30) {
		t.Fatalf("unexpected bounds %s..%s", slots[0].Time, slots[len(slots)-1].Time)
	}
	for _, s := range slots {
		lunch := s.Time == calendar.At(12, 0) || s.Time == calendar.At(12, 30)
		if s.Available == lunch {
			t.Fatalf("slot %s: available=%v", s.Time, s.Available)
		}
	}
}

func TestSlotSelectableToday(t *testing.T) {
	now := time.Date(2025, time.March, 14, 14, 35, 0, 0, time.UTC)
	today := calendar.DateOf(now)

	cases := []struct {
		slot Slot
		want bool
	}{
		{Slot{Time: calendar.At(14, 0), Available: true}, false},
		{Slot{Time: calendar.At(14, 30), Available: true}, false},
		{Slot{Time: calendar.At(15, 0), Available: true}, true},
		{Slot{Time: calendar.At(16, 0), Available: false}, false},
	}
	for _, tc := range cases {
		if got := SlotSelectable(tc.slot, today, now); got != tc.want {
			t.Fatalf("slot %s today: expected %v, got %v", tc.slot.Time, tc.want, got)
		}
	}
}

func TestSlotSelectableExactMinuteIsPast(t *testing.T) {
	now := time.Date(2025, time.March, 14, 15, 0, 0, 0, time.UTC)
	if SlotSelectable(Slot{Time: calendar.At(15, 0), Available: true}, calendar.DateOf(now), now) {
		t.Fatalf("slot equal to now must not be selectable")
	}
}

func TestSlotSelectableFutureDateUsesAvailableOnly(t *testing.T) {
	now := time.Date(2025, time.March, 14, 14, 35, 0, 0, time.UTC)
	tomorrow := calendar.DateOf(now).AddDays(1)

	for _, s := range DefaultSlots() {
		if got := SlotSelectable(s, tomorrow, now); got != s.Available {
			t.Fatalf("slot %s tomorrow: expected %v, got %v", s.Time, s.Available, got)
		}
	}
}

func TestFilterSlotsKeepsOrderAndFlags(t *testing.T) {
	now := time.Date(2025, time.March, 14, 10, 15, 0, 0, time.UTC)
	out := FilterSlots(DefaultSlots(), calendar.DateOf(now), now)

	if len(out) != len(DefaultSlots()) {
		t.Fatalf("filter must not drop slots")
	}
	if out[0].Selectable || out[2].Selectable {
		t.Fatalf("morning slots before 10:15 must not be selectable")
	}
	if !out[3].Selectable {
		t.Fatalf("10:30 AM should be selectable at 10:15")
	}
}

func TestDateSelectable(t *testing.T) {
	now := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC) // Wednesday

	cases := []struct {
		name string
		date calendar.Date
		want bool
	}{
		{"yesterday", calendar.NewDate(2025, time.March, 11), false},
		{"today", calendar.NewDate(2025, time.March, 12), true},
		{"friday", calendar.NewDate(2025, time.March, 14), true},
		{"saturday", calendar.NewDate(2025, time.March, 15), false},
		{"sunday", calendar.NewDate(2025, time.March, 16), false},
		{"zero", calendar.Date{}, false},
	}
	for _, tc := range cases {
		if got := DateSelectable(tc.date, now); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
