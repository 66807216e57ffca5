package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httpresp"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

type CustomerHandler struct {
	customers domain.CustomerRepository
}

func NewCustomerHandler(customers domain.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// ======================================================
// LIST CUSTOMERS (ADMIN)
// ======================================================
func (h *CustomerHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	all, err := h.customers.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	if query == "" {
		httpresp.List(c, all)
		return
	}

	matched := []models.Customer{}
	for _, cu := range all {
		if strings.Contains(strings.ToLower(cu.Name), query) ||
			strings.Contains(strings.ToLower(cu.Email), query) {
			matched = append(matched, cu)
		}
	}
	httpresp.List(c, matched)
}
