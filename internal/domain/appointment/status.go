package appointment

import "github.com/BruksfildServices01/bank-booking-portal/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCancelled: nil,
	StatusCompleted: nil,
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	_, ok := transitions[s]
	return s, ok
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// ===============================
// Validations
// ===============================

// CanTransition reports whether an admin may move an appointment from
// current to next. Setting the current status again is accepted.
func CanTransition(current, next Status) error {
	if _, ok := transitions[next]; !ok {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	if current == next {
		return nil
	}
	for _, allowed := range transitions[current] {
		if allowed == next {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidTransition)
}

// CanReschedule: only cancelled appointments are frozen for the customer.
func CanReschedule(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness(httperr.CodeAppointmentCanceled)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
