package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/bank-booking-portal/internal/audit"
	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

// SetStatus moves an appointment through the status machine. The list
// shows the new status as soon as the call returns successfully.
func (e *Engine) SetStatus(ctx context.Context, id string, status domain.Status) (models.Appointment, error) {
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

	next := prev.Appointment
	if err := domain.ChangeStatus(&next, status); err != nil {
		e.mu.Unlock()
		return models.Appointment{}, err
	}

	e.dispatch()
	e.rows[i].Appointment = next
	e.mu.Unlock()

	updated, err := e.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		e.mu.Lock()
		if j := e.indexOf(id); j >= 0 {
			e.rows[j].Status = prev.Status
		}
		e.mu.Unlock()

		e.log.Warn("status change rejected",
			zap.String("id", id),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return models.Appointment{}, err
	}
	if updated.ID == "" {
		updated = next
	}

	e.record(ctx, audit.ActionAppointmentStatusChanged, id, map[string]string{
		"from": prev.Status,
		"to":   string(status),
	})
	e.reconcile(ctx, "set_status")
	return updated, nil
}
