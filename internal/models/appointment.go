package models

import "github.com/BruksfildServices01/bank-booking-portal/internal/calendar"

// Appointment mirrors the booking resource. Status is kept as the raw wire
// string; the domain package owns its meaning.
type Appointment struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customerId"`
	Service    string             `json:"service"`
	Branch     string             `json:"branch"`
	Date       calendar.Date      `json:"date"`
	Time       calendar.TimeOfDay `json:"time"`
	Status     string             `json:"status"`
	Notes      string             `json:"notes,omitempty"`
}

// AppointmentPatch carries a partial reschedule. Nil fields are left untouched.
type AppointmentPatch struct {
	Branch *string             `json:"branch,omitempty"`
	Date   *calendar.Date      `json:"date,omitempty"`
	Time   *calendar.TimeOfDay `json:"time,omitempty"`
	Notes  *string             `json:"notes,omitempty"`
}

func (p AppointmentPatch) IsEmpty() bool {
	return p.Branch == nil && p.Date == nil && p.Time == nil && p.Notes == nil
}

// Apply returns a copy of ap with the patch fields set.
func (p AppointmentPatch) Apply(ap Appointment) Appointment {
	if p.Branch != nil {
		ap.Branch = *p.Branch
	}
	if p.Date != nil {
		ap.Date = *p.Date
	}
	if p.Time != nil {
		ap.Time = *p.Time
	}
	if p.Notes != nil {
		ap.Notes = *p.Notes
	}
	return ap
}
