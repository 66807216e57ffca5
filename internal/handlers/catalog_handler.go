package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httpresp"
	"github.com/BruksfildServices01/bank-booking-portal/internal/timezone"
)

// CatalogHandler serves the fixed services, branches and slot grid.
type CatalogHandler struct {
	slots []domain.Slot
	clock timezone.Clock
}

func NewCatalogHandler(slots []domain.Slot, clock timezone.Clock) *CatalogHandler {
	return &CatalogHandler{slots: slots, clock: clock}
}

func (h *CatalogHandler) Services(c *gin.Context) {
	httpresp.List(c, domain.Services())
}

func (h *CatalogHandler) Branches(c *gin.Context) {
	httpresp.List(c, domain.Branches())
}

// Slots lists the slot grid for ?date=YYYY-MM-DD with a selectable flag
// per slot. dateSelectable is false for past dates and weekends; the
// calendar greys those out before any slot is shown.
func (h *CatalogHandler) Slots(c *gin.Context) {
	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	now := h.clock()
	httpresp.OK(c, gin.H{
		"date":           date,
		"dateSelectable": domain.DateSelectable(date, now),
		"slots":          domain.FilterSlots(h.slots, date, now),
	})
}
