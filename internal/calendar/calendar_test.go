package calendar

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"9:00 AM", At(9, 0)},
		{"2:30 pm", At(14, 30)},
		{"12:00 PM", At(12, 0)},
		{"12:30 AM", At(0, 30)},
		{"14:35", At(14, 35)},
		{" 04:30 PM ", At(16, 30)},
		{"14:00:00", At(14, 0)},
		{"2:15:00 PM", At(14, 15)},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %d, got %d", tc.in, tc.want, got)
		}
	}

	if _, err := ParseTimeOfDay("noon"); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

func TestTimeOfDayJSONWithSeconds(t *testing.T) {
	var row struct {
		Date Date      `json:"date"`
		Time TimeOfDay `json:"time"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2026-01-15","time":"14:00:00"}`), &row); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if row.Time != At(14, 0) {
		t.Fatalf("expected 2:00 PM, got %v", row.Time)
	}
}

func TestTimeOfDayString(t *testing.T) {
	if s := At(9, 0).String(); s != "9:00 AM" {
		t.Fatalf("expected 9:00 AM, got %q", s)
	}
	if s := At(16, 30).String(); s != "4:30 PM" {
		t.Fatalf("expected 4:30 PM, got %q", s)
	}
	if s := NoTime.String(); s != "" {
		t.Fatalf("expected empty string for unset time, got %q", s)
	}
}

func TestDateJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-03-14T00:00:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d != NewDate(2025, time.March, 14) {
		t.Fatalf("unexpected date %v", d)
	}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-03-14"` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestDateOrderingAndWeekend(t *testing.T) {
	fri := NewDate(2025, time.March, 14)
	sat := fri.AddDays(1)

	if !fri.Before(sat) || !sat.After(fri) || fri.Compare(fri) != 0 {
		t.Fatalf("ordering broken for %v and %v", fri, sat)
	}
	if fri.IsWeekend() {
		t.Fatalf("friday reported as weekend")
	}
	if !sat.IsWeekend() {
		t.Fatalf("saturday not reported as weekend")
	}
	if NewDate(2024, time.December, 31).AddDays(1) != NewDate(2025, time.January, 1) {
		t.Fatalf("AddDays does not roll the year")
	}
}
