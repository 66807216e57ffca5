package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bank-booking-portal/internal/domain/wizard"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httpresp"
	"github.com/BruksfildServices01/bank-booking-portal/internal/middleware"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
	"github.com/BruksfildServices01/bank-booking-portal/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

// WizardHandler drives the per-session booking wizard. Every response
// carries the wizard view so the client can render the current step.
type WizardHandler struct {
	wizards   *wizard.Registry
	submitter wizard.Submitter
	clock     timezone.Clock
}

func NewWizardHandler(wizards *wizard.Registry, submitter wizard.Submitter, clock timezone.Clock) *WizardHandler {
	return &WizardHandler{
		wizards:   wizards,
		submitter: submitter,
		clock:     clock,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SelectRequest struct {
	ID string `json:"id" binding:"required"`
}

type DateRequest struct {
	Date string `json:"date" binding:"required"`
}

type TimeRequest struct {
	Time string `json:"time" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *WizardHandler) current(c *gin.Context) *wizard.Wizard {
	return h.wizards.Get(c.MustGet(middleware.ContextSessionID).(string))
}

// respond writes the wizard view, with the error mapped when err is set.
func respond(c *gin.Context, w *wizard.Wizard, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, w.Snapshot())
}

// ======================================================
// LIFECYCLE
// ======================================================

// Start discards any wizard of this session and begins at the service step.
func (h *WizardHandler) Start(c *gin.Context) {
	w := h.wizards.Reset(c.MustGet(middleware.ContextSessionID).(string))
	c.JSON(http.StatusCreated, w.Snapshot())
}

func (h *WizardHandler) Get(c *gin.Context) {
	respond(c, h.current(c), nil)
}

func (h *WizardHandler) Next(c *gin.Context) {
	w := h.current(c)
	respond(c, w, w.Next())
}

func (h *WizardHandler) Back(c *gin.Context) {
	w := h.current(c)
	respond(c, w, w.Back())
}

// ======================================================
// SELECTIONS
// ======================================================

func (h *WizardHandler) SelectService(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Service id is required.")
		return
	}
	w := h.current(c)
	respond(c, w, w.SelectService(req.ID))
}

func (h *WizardHandler) SelectBranch(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Branch id is required.")
		return
	}
	w := h.current(c)
	respond(c, w, w.SelectBranch(req.ID))
}

func (h *WizardHandler) SelectDate(c *gin.Context) {
	var req DateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Date is required.")
		return
	}
	date, err := parseDateParam(req.Date)
	if err != nil {
		writeError(c, err)
		return
	}
	w := h.current(c)
	respond(c, w, w.SelectDate(date, h.clock()))
}

func (h *WizardHandler) SelectTime(c *gin.Context) {
	var req TimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Time is required.")
		return
	}
	t, err := parseTimeParam(req.Time)
	if err != nil {
		writeError(c, err)
		return
	}
	w := h.current(c)
	respond(c, w, w.SelectTime(t, h.clock()))
}

func (h *WizardHandler) SetContact(c *gin.Context) {
	var req wizard.Contact
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid contact details.")
		return
	}
	w := h.current(c)
	respond(c, w, w.SetContact(req))
}

// ======================================================
// CONFIRM
// ======================================================

// Confirm books the appointment for the signed-in user.
func (h *WizardHandler) Confirm(c *gin.Context) {
	identity := c.MustGet(middleware.ContextIdentity).(models.Identity)
	w := h.current(c)

	if _, err := w.Confirm(c.Request.Context(), h.submitter, identity.ID, h.clock()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w.Snapshot())
}
