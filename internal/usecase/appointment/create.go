package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bank-booking-portal/internal/audit"
	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

// ErrNoServerID is returned when the backend accepts a booking without
// assigning it an id.
var ErrNoServerID = errors.New("booking service returned no id")

func validateDraft(draft models.Appointment) error {
	if draft.CustomerID == "" {
		return httperr.ErrBusiness(httperr.CodeMissingCustomer)
	}
	if _, ok := domain.FindService(draft.Service); !ok {
		return httperr.ErrBusiness(httperr.CodeInvalidService)
	}
	if _, ok := domain.FindBranch(draft.Branch); !ok {
		return httperr.ErrBusiness(httperr.CodeInvalidBranch)
	}
	if draft.Date.IsZero() {
		return httperr.ErrBusiness(httperr.CodeInvalidDate)
	}
	if !draft.Time.Valid() {
		return httperr.ErrBusiness(httperr.CodeInvalidTime)
	}
	return nil
}

// Create submits a new booking. A draft- placeholder row is shown while the
// backend call is in flight and is swapped for the server row on success.
func (e *Engine) Create(ctx context.Context, draft models.Appointment) (models.Appointment, error) {
	if err := validateDraft(draft); err != nil {
		return models.Appointment{}, err
	}
	if draft.Status == "" {
		draft.Status = string(domain.InitialStatus())
	}

	placeholder := draft
	placeholder.ID = draftPrefix + uuid.NewString()
	row := e.hydrate(ctx, placeholder)

	e.mu.Lock()
	e.dispatch()
	e.rows = append(e.rows, row)
	e.mu.Unlock()

	created, err := e.repo.Create(ctx, draft)
	if err == nil && created.ID == "" {
		err = ErrNoServerID
	}
	if err != nil {
		e.mu.Lock()
		e.drop(placeholder.ID)
		e.mu.Unlock()

		e.log.Warn("create appointment rejected", zap.Error(err))
		return models.Appointment{}, err
	}

	e.mu.Lock()
	e.replace(placeholder.ID, restyle(row, created))
	e.mu.Unlock()

	e.record(ctx, audit.ActionAppointmentCreated, created.ID, map[string]any{
		"customer_id": created.CustomerID,
		"service":     created.Service,
		"branch":      created.Branch,
		"date":        created.Date.String(),
		"time":        created.Time.String(),
	})

	e.reconcile(ctx, "create")
	return created, nil
}
