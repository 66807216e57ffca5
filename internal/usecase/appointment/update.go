package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/bank-booking-portal/internal/audit"
	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

// Update reschedules an appointment (branch, date, time or notes).
func (e *Engine) Update(ctx context.Context, id string, patch models.AppointmentPatch) (models.Appointment, error) {
	if err := e.EnsureLoaded(ctx); err != nil {
		return models.Appointment{}, err
	}

	e.mu.Lock()
	i := e.indexOf(id)
	if i < 0 {
		e.mu.Unlock()
		return models.Appointment{}, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	prev := e.rows[i]

	next, err := domain.Reschedule(prev.Appointment, patch)
	if err == nil && (patch.Date != nil || patch.Time != nil) {
		err = e.checkSlot(next)
	}
	if err != nil {
		e.mu.Unlock()
		return models.Appointment{}, err
	}

	e.dispatch()
	e.rows[i] = restyle(prev, next)
	e.mu.Unlock()

	updated, err := e.repo.Update(ctx, id, patch)
	if err != nil {
		e.mu.Lock()
		if j := e.indexOf(id); j >= 0 {
			e.rows[j] = restyle(e.rows[j], revert(e.rows[j].Appointment, prev.Appointment, next, patch))
		}
		e.mu.Unlock()

		e.log.Warn("update appointment rejected", zap.String("id", id), zap.Error(err))
		return models.Appointment{}, err
	}
	if updated.ID == "" {
		updated = next
	} else {
		e.mu.Lock()
		e.replace(id, restyle(prev, updated))
		e.mu.Unlock()
	}

	e.record(ctx, audit.ActionAppointmentUpdated, id, patch)
	e.reconcile(ctx, "update")
	return updated, nil
}

// revert puts back the patched fields of cur that still hold the optimistic
// value. Fields changed since (by a refetch or another mutation) are left alone.
func revert(cur, prev, next models.Appointment, patch models.AppointmentPatch) models.Appointment {
	if patch.Branch != nil && cur.Branch == next.Branch {
		cur.Branch = prev.Branch
	}
	if patch.Date != nil && cur.Date == next.Date {
		cur.Date = prev.Date
	}
	if patch.Time != nil && cur.Time == next.Time {
		cur.Time = prev.Time
	}
	if patch.Notes != nil && cur.Notes == next.Notes {
		cur.Notes = prev.Notes
	}
	return cur
}

// checkSlot validates a rescheduled date/time against the slot filter.
func (e *Engine) checkSlot(ap models.Appointment) error {
	now := e.clock()
	if !domain.DateSelectable(ap.Date, now) {
		return httperr.ErrBusiness(httperr.CodeInvalidDate)
	}
	if !domain.TimeSelectable(e.catalog, ap.Date, ap.Time, now) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	return nil
}
