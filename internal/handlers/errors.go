package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/infra/remote"
	ucAppointment "github.com/BruksfildServices01/bank-booking-portal/internal/usecase/appointment"
)

var businessMessages = map[string]string{
	httperr.CodeStepIncomplete:      "Complete the current step before continuing.",
	httperr.CodeSubmitInProgress:    "Your booking is already being submitted.",
	httperr.CodeAlreadyConfirmed:    "This booking has already been confirmed.",
	httperr.CodeNotAtConfirmStep:    "Review your booking before confirming.",
	httperr.CodeInvalidService:      "Unknown service.",
	httperr.CodeInvalidBranch:       "Unknown branch.",
	httperr.CodeInvalidDate:         "Choose a weekday from today onwards.",
	httperr.CodeInvalidTime:         "Invalid time.",
	httperr.CodeSlotUnavailable:     "That time slot is not available.",
	httperr.CodeEmailTaken:          "An account with this email already exists.",
	httperr.CodeWeakPassword:        "Password must be at least 6 characters.",
	httperr.CodeInvalidEmail:        "Please enter a valid email address.",
	httperr.CodeMissingName:         "Name is required.",
	httperr.CodeMissingCustomer:     "A customer is required.",
	httperr.CodeInvalidCredentials:  "Invalid email or password.",
	httperr.CodeInvalidTransition:   "That status change is not allowed.",
	httperr.CodeAppointmentCanceled: "This appointment has been cancelled.",
	httperr.CodeAppointmentNotFound: "Appointment not found.",
	httperr.CodeEmptyPatch:          "Nothing to update.",
	httperr.CodeForbidden:           "Insufficient permissions.",
}

// writeError maps domain and remote errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	if code, ok := httperr.AsBusiness(err); ok {
		msg, known := businessMessages[code]
		if !known {
			msg = code
		}

		switch code {
		case httperr.CodeAppointmentNotFound:
			httperr.NotFound(c, code, msg)
		case httperr.CodeInvalidCredentials:
			httperr.Unauthorized(c, code, msg)
		case httperr.CodeSubmitInProgress:
			httperr.Conflict(c, code, msg)
		case httperr.CodeForbidden:
			httperr.Forbidden(c, code, msg)
		default:
			httperr.BadRequest(c, code, msg)
		}
		return
	}

	if rej, ok := remote.AsRejection(err); ok {
		httperr.BadGateway(c, "backend_rejected", rej.Message)
		return
	}

	if errors.Is(err, ucAppointment.ErrNoServerID) {
		httperr.BadGateway(c, "backend_rejected", err.Error())
		return
	}

	var netErr *remote.NetworkError
	if errors.As(err, &netErr) {
		httperr.Unavailable(c, "backend_unreachable", netErr.Error())
		return
	}

	_ = c.Error(err)
	httperr.Internal(c, "internal_error", "Unexpected error.")
}
