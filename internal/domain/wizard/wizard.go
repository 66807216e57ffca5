// Package wizard implements the five-step booking flow: service, branch,
// date/time, contact details and confirmation.
package wizard

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/bank-booking-portal/internal/calendar"
	"github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

type Step int

const (
	StepService Step = iota + 1
	StepBranch
	StepDateTime
	StepContact
	StepConfirm
)

var stepNames = map[Step]string{
	StepService:  "service",
	StepBranch:   "branch",
	StepDateTime: "datetime",
	StepContact:  "contact",
	StepConfirm:  "confirm",
}

func (s Step) String() string {
	return stepNames[s]
}

var (
	ErrStepIncomplete   = httperr.ErrBusiness(httperr.CodeStepIncomplete)
	ErrSubmitInProgress = httperr.ErrBusiness(httperr.CodeSubmitInProgress)
	ErrAlreadyConfirmed = httperr.ErrBusiness(httperr.CodeAlreadyConfirmed)
	ErrNotAtConfirmStep = httperr.ErrBusiness(httperr.CodeNotAtConfirmStep)
	ErrInvalidService   = httperr.ErrBusiness(httperr.CodeInvalidService)
	ErrInvalidBranch    = httperr.ErrBusiness(httperr.CodeInvalidBranch)
	ErrInvalidDate      = httperr.ErrBusiness(httperr.CodeInvalidDate)
	ErrSlotUnavailable  = httperr.ErrBusiness(httperr.CodeSlotUnavailable)
)

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// Submitter persists the confirmed draft.
type Submitter interface {
	Create(ctx context.Context, draft models.Appointment) (models.Appointment, error)
}

type Wizard struct {
	mu      sync.Mutex
	catalog []appointment.Slot

	step    Step
	service string
	branch  string
	date    calendar.Date
	time    calendar.TimeOfDay
	contact Contact

	submitting     bool
	confirmed      bool
	confirmationID string
	booked         models.Appointment
	lastError      string
}

func New(catalog []appointment.Slot) *Wizard {
	return &Wizard{
		catalog: catalog,
		step:    StepService,
		time:    calendar.NoTime,
	}
}

// ===============================
// Navigation
// ===============================

// Next advances one step when the current step is complete.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if !w.stepComplete(w.step) {
		return ErrStepIncomplete
	}
	if w.step < StepConfirm {
		w.step++
	}
	return nil
}

func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if w.step > StepService {
		w.step--
	}
	return nil
}

func (w *Wizard) stepComplete(s Step) bool {
	switch s {
	case StepService:
		return w.service != ""
	case StepBranch:
		return w.branch != ""
	case StepDateTime:
		return !w.date.IsZero() && w.time != calendar.NoTime
	case StepContact:
		return strings.TrimSpace(w.contact.Name) != "" && strings.TrimSpace(w.contact.Email) != ""
	case StepConfirm:
		return true
	}
	return false
}

func (w *Wizard) mutable() error {
	if w.confirmed {
		return ErrAlreadyConfirmed
	}
	if w.submitting {
		return ErrSubmitInProgress
	}
	return nil
}

// ===============================
// Selections
// ===============================

func (w *Wizard) SelectService(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if _, ok := appointment.FindService(id); !ok {
		return ErrInvalidService
	}
	w.service = id
	return nil
}

func (w *Wizard) SelectBranch(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if _, ok := appointment.FindBranch(id); !ok {
		return ErrInvalidBranch
	}
	w.branch = id
	return nil
}

// SelectDate sets the date and drops a chosen time that is no longer
// selectable on it.
func (w *Wizard) SelectDate(date calendar.Date, now time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if !appointment.DateSelectable(date, now) {
		return ErrInvalidDate
	}
	w.date = date
	if w.time != calendar.NoTime && !appointment.TimeSelectable(w.catalog, date, w.time, now) {
		w.time = calendar.NoTime
	}
	return nil
}

func (w *Wizard) SelectTime(t calendar.TimeOfDay, now time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	if w.date.IsZero() {
		return ErrInvalidDate
	}
	if !appointment.TimeSelectable(w.catalog, w.date, t, now) {
		return ErrSlotUnavailable
	}
	w.time = t
	return nil
}

func (w *Wizard) SetContact(c Contact) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutable(); err != nil {
		return err
	}
	w.contact = c
	return nil
}

// ===============================
// Confirmation
// ===============================

// Confirm submits the booking as customerID. The wizard lock is released
// while the submitter runs; the submitting flag rejects concurrent confirms.
// On failure the wizard stays on the confirm step so the caller can retry.
func (w *Wizard) Confirm(ctx context.Context, sub Submitter, customerID string, now time.Time) (models.Appointment, error) {
	w.mu.Lock()
	if err := w.mutable(); err != nil {
		w.mu.Unlock()
		return models.Appointment{}, err
	}
	if w.step != StepConfirm {
		w.mu.Unlock()
		return models.Appointment{}, ErrNotAtConfirmStep
	}
	if !appointment.TimeSelectable(w.catalog, w.date, w.time, now) {
		w.lastError = ErrSlotUnavailable.Error()
		w.mu.Unlock()
		return models.Appointment{}, ErrSlotUnavailable
	}

	draft := appointment.NewDraft(customerID, w.service, w.branch, w.date, w.time, w.contact.Notes)
	w.submitting = true
	w.lastError = ""
	w.mu.Unlock()

	created, err := sub.Create(ctx, draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if err != nil {
		w.lastError = err.Error()
		return models.Appointment{}, err
	}

	w.confirmed = true
	w.confirmationID = ConfirmationID(now)
	w.booked = created
	return created, nil
}

// ConfirmationID is the reference shown to the customer: "CB-" followed by
// the upper-cased base-36 unix milliseconds.
func ConfirmationID(now time.Time) string {
	return "CB-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}

// ===============================
// Snapshot
// ===============================

type View struct {
	Step           int                 `json:"step"`
	StepName       string              `json:"stepName"`
	Service        string              `json:"service,omitempty"`
	Branch         string              `json:"branch,omitempty"`
	Date           calendar.Date       `json:"date"`
	Time           calendar.TimeOfDay  `json:"time"`
	Contact        Contact             `json:"contact"`
	CanProceed     bool                `json:"canProceed"`
	Submitting     bool                `json:"submitting"`
	Confirmed      bool                `json:"confirmed"`
	ConfirmationID string              `json:"confirmationId,omitempty"`
	Appointment    *models.Appointment `json:"appointment,omitempty"`
	LastError      string              `json:"lastError,omitempty"`
}

func (w *Wizard) Snapshot() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		Step:           int(w.step),
		StepName:       w.step.String(),
		Service:        w.service,
		Branch:         w.branch,
		Date:           w.date,
		Time:           w.time,
		Contact:        w.contact,
		CanProceed:     !w.confirmed && w.stepComplete(w.step),
		Submitting:     w.submitting,
		Confirmed:      w.confirmed,
		ConfirmationID: w.confirmationID,
		LastError:      w.lastError,
	}
	if w.confirmed {
		booked := w.booked
		v.Appointment = &booked
	}
	return v
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}
