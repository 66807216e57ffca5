package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bank-booking-portal/internal/audit"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httpresp"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

// AuditLogReader is satisfied by audit.GormSink.
type AuditLogReader interface {
	List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs AuditLogReader
}

// NewAuditLogsHandler accepts a nil reader; listing then reports the
// audit store as disabled.
func NewAuditLogsHandler(logs AuditLogReader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if h.logs == nil {
		httperr.Unavailable(c, "audit_disabled", "Audit storage is not configured.")
		return
	}

	page, limit := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "50"))

	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Optional date range
	// --------------------------------------------------

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q.From = &from
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q.To = &to
		}
	}

	logs, total, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Unable to list audit logs.")
		return
	}

	httpresp.Page(c, logs, total, page, limit)
}
