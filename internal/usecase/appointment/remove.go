package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/bank-booking-portal/internal/audit"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
)

// Remove deletes an appointment. On failure the row is put back where it was.
func (e *Engine) Remove(ctx context.Context, id string) error {
	if err := e.EnsureLoaded(ctx); err != nil {
		return err
	}

	e.mu.Lock()
	row, at, ok := e.drop(id)
	if !ok {
		e.mu.Unlock()
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	e.dispatch()
	e.mu.Unlock()

	if err := e.repo.Delete(ctx, id); err != nil {
		e.mu.Lock()
		if e.indexOf(id) < 0 {
			e.insertAt(at, row)
		}
		e.mu.Unlock()

		e.log.Warn("delete appointment rejected", zap.String("id", id), zap.Error(err))
		return err
	}

	e.record(ctx, audit.ActionAppointmentDeleted, id, nil)
	e.reconcile(ctx, "remove")
	return nil
}
