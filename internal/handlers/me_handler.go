package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httpresp"
	"github.com/BruksfildServices01/bank-booking-portal/internal/middleware"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
	ucAppointment "github.com/BruksfildServices01/bank-booking-portal/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type MeHandler struct {
	engine *ucAppointment.Engine
}

func NewMeHandler(engine *ucAppointment.Engine) *MeHandler {
	return &MeHandler{engine: engine}
}

// ======================================================
// REQUESTS
// ======================================================

type RescheduleRequest struct {
	Branch *string `json:"branch"`
	Date   *string `json:"date"`
	Time   *string `json:"time"`
	Notes  *string `json:"notes"`
}

func (r RescheduleRequest) patch() (models.AppointmentPatch, error) {
	p := models.AppointmentPatch{Branch: r.Branch, Notes: r.Notes}
	if r.Date != nil {
		d, err := parseDateParam(*r.Date)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}
	if r.Time != nil {
		t, err := parseTimeParam(*r.Time)
		if err != nil {
			return p, err
		}
		p.Time = &t
	}
	return p, nil
}

// ======================================================
// PROFILE
// ======================================================

func (h *MeHandler) GetMe(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		httperr.Unauthorized(c, "identity_missing", "No signed-in user.")
		return
	}
	httpresp.OK(c, gin.H{"user": identity})
}

// ======================================================
// APPOINTMENTS
// ======================================================

// ListAppointments splits the caller's bookings into upcoming and past.
func (h *MeHandler) ListAppointments(c *gin.Context) {
	identity := c.MustGet(middleware.ContextIdentity).(models.Identity)
	if err := h.engine.EnsureLoaded(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, h.engine.ForCustomer(identity.ID))
}

func (h *MeHandler) Reschedule(c *gin.Context) {
	id, ok := h.owned(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(c, err)
		return
	}

	updated, err := h.engine.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Success(c, updated)
}

func (h *MeHandler) Cancel(c *gin.Context) {
	id, ok := h.owned(c)
	if !ok {
		return
	}

	updated, err := h.engine.SetStatus(c.Request.Context(), id, domain.StatusCancelled)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Success(c, updated)
}

func (h *MeHandler) Delete(c *gin.Context) {
	id, ok := h.owned(c)
	if !ok {
		return
	}

	if err := h.engine.Remove(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	httpresp.Success(c, nil)
}

// owned resolves :id to an appointment of the signed-in customer. Other
// customers' bookings read as not found.
func (h *MeHandler) owned(c *gin.Context) (string, bool) {
	identity := c.MustGet(middleware.ContextIdentity).(models.Identity)
	id := c.Param("id")

	if err := h.engine.EnsureLoaded(c.Request.Context()); err != nil {
		writeError(c, err)
		return "", false
	}
	row, ok := h.engine.Get(id)
	if !ok || row.CustomerID != identity.ID {
		writeError(c, httperr.ErrBusiness(httperr.CodeAppointmentNotFound))
		return "", false
	}
	return id, true
}
