package httperr

import "errors"

// Validation codes surfaced to clients as error_code.
const (
	CodeStepIncomplete      = "step_incomplete"
	CodeSubmitInProgress    = "submit_in_progress"
	CodeAlreadyConfirmed    = "already_confirmed"
	CodeNotAtConfirmStep    = "not_at_confirm_step"
	CodeInvalidService      = "invalid_service"
	CodeInvalidBranch       = "invalid_branch"
	CodeInvalidDate         = "invalid_date"
	CodeInvalidTime         = "invalid_time"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeEmailTaken          = "email_taken"
	CodeWeakPassword        = "weak_password"
	CodeInvalidEmail        = "invalid_email"
	CodeMissingName         = "missing_name"
	CodeMissingCustomer     = "missing_customer"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeInvalidTransition   = "invalid_transition"
	CodeAppointmentCanceled = "appointment_cancelled"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeEmptyPatch          = "empty_patch"
	CodeForbidden           = "forbidden"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness reports whether err is a BusinessError and returns its code.
func AsBusiness(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
