package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/bank-booking-portal/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler is the branch admin view over every booking.
type AppointmentHandler struct {
	engine *ucAppointment.Engine
}

func NewAppointmentHandler(engine *ucAppointment.Engine) *AppointmentHandler {
	return &AppointmentHandler{engine: engine}
}

// ======================================================
// REQUESTS
// ======================================================

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// LIST / STATS
// ======================================================

// List applies ?q= (name, email or service), ?status= and
// ?date=all|today|upcoming|past.
func (h *AppointmentHandler) List(c *gin.Context) {
	if err := h.engine.EnsureLoaded(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	rows := h.engine.Filter(ucAppointment.AdminFilter{
		Search: c.Query("q"),
		Status: c.Query("status"),
		Date:   c.DefaultQuery("date", ucAppointment.DateFilterAll),
	})
	httpresp.List(c, rows)
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	if err := h.engine.EnsureLoaded(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, h.engine.Stats())
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		httperr.BadRequest(c, "invalid_status", "Unknown status.")
		return
	}

	updated, err := h.engine.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Success(c, updated)
}

// ======================================================
// REFRESH
// ======================================================

// Refresh refetches the list and customer details from the backend. A
// failed fetch leaves the previous list in place.
func (h *AppointmentHandler) Refresh(c *gin.Context) {
	if err := h.engine.Refresh(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, h.engine.Snapshot())
}
