package appointment

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/bank-booking-portal/internal/calendar"
	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/dto"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

// ======================================================
// READS
// ======================================================

func (e *Engine) Snapshot() []dto.AppointmentView {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]dto.AppointmentView, len(e.rows))
	copy(out, e.rows)
	return out
}

func (e *Engine) Get(id string) (dto.AppointmentView, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if i := e.indexOf(id); i >= 0 {
		return e.rows[i], true
	}
	return dto.AppointmentView{}, false
}

// ForCustomer splits a customer's appointments: open ones (pending or
// confirmed) soonest first, closed ones most recent first.
func (e *Engine) ForCustomer(customerID string) dto.CustomerAppointments {
	out := dto.CustomerAppointments{
		Upcoming: []models.Appointment{},
		Past:     []models.Appointment{},
	}
	for _, row := range e.Snapshot() {
		if row.CustomerID != customerID {
			continue
		}
		if domain.Status(row.Status).Terminal() {
			out.Past = append(out.Past, row.Appointment)
		} else {
			out.Upcoming = append(out.Upcoming, row.Appointment)
		}
	}

	sort.SliceStable(out.Upcoming, func(i, j int) bool {
		return chronological(out.Upcoming[i], out.Upcoming[j])
	})
	sort.SliceStable(out.Past, func(i, j int) bool {
		return chronological(out.Past[j], out.Past[i])
	})
	return out
}

func chronological(a, b models.Appointment) bool {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c < 0
	}
	return a.Time < b.Time
}

// ======================================================
// ADMIN FILTER
// ======================================================

const (
	DateFilterAll      = "all"
	DateFilterToday    = "today"
	DateFilterUpcoming = "upcoming"
	DateFilterPast     = "past"
)

type AdminFilter struct {
	Search string
	Status string
	Date   string
}

// Filter applies the admin dashboard filters and sorts by date then time.
// Empty or "all" values match everything.
func (e *Engine) Filter(f AdminFilter) []dto.AppointmentView {
	today := e.clock.Today()
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := []dto.AppointmentView{}
	for _, row := range e.Snapshot() {
		if search != "" && !matchesSearch(row, search) {
			continue
		}
		if f.Status != "" && f.Status != DateFilterAll && row.Status != f.Status {
			continue
		}
		if !matchesDate(row.Date, f.Date, today) {
			continue
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return chronological(out[i].Appointment, out[j].Appointment)
	})
	return out
}

func matchesSearch(row dto.AppointmentView, needle string) bool {
	for _, hay := range []string{row.CustomerName, row.CustomerEmail, row.Service, row.ServiceName} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func matchesDate(d calendar.Date, filter string, today calendar.Date) bool {
	switch filter {
	case DateFilterToday:
		return d == today
	case DateFilterUpcoming:
		return !d.Before(today)
	case DateFilterPast:
		return d.Before(today)
	}
	return true
}

// Stats counts the whole list, regardless of filters.
func (e *Engine) Stats() dto.AppointmentStats {
	today := e.clock.Today()

	var s dto.AppointmentStats
	for _, row := range e.Snapshot() {
		s.Total++
		switch domain.Status(row.Status) {
		case domain.StatusPending:
			s.Pending++
		case domain.StatusConfirmed:
			s.Confirmed++
		case domain.StatusCompleted:
			s.Completed++
		case domain.StatusCancelled:
			s.Cancelled++
		}
		if row.Date == today {
			s.Today++
		}
	}
	return s
}
