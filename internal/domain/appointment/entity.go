package appointment

import (
	"github.com/BruksfildServices01/bank-booking-portal/internal/calendar"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// NewDraft builds a pending booking for submission. The id is left empty;
// the booking service assigns it.
func NewDraft(customerID, service, branch string, date calendar.Date, t calendar.TimeOfDay, notes string) models.Appointment {
	return models.Appointment{
		CustomerID: customerID,
		Service:    service,
		Branch:     branch,
		Date:       date,
		Time:       t,
		Status:     string(InitialStatus()),
		Notes:      notes,
	}
}

func ChangeStatus(ap *models.Appointment, next Status) error {
	if err := CanTransition(Status(ap.Status), next); err != nil {
		return err
	}
	ap.Status = string(next)
	return nil
}

// Reschedule validates a patch against ap and returns the patched copy.
func Reschedule(ap models.Appointment, patch models.AppointmentPatch) (models.Appointment, error) {
	if patch.IsEmpty() {
		return ap, httperr.ErrBusiness(httperr.CodeEmptyPatch)
	}
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return ap, err
	}
	if patch.Branch != nil {
		if _, ok := FindBranch(*patch.Branch); !ok {
			return ap, httperr.ErrBusiness(httperr.CodeInvalidBranch)
		}
	}
	if patch.Time != nil && !patch.Time.Valid() {
		return ap, httperr.ErrBusiness(httperr.CodeInvalidTime)
	}
	return patch.Apply(ap), nil
}
