package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/infra/remote"
	ucAppointment "github.com/BruksfildServices01/bank-booking-portal/internal/usecase/appointment"
)

func TestWriteErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", httperr.ErrBusiness(httperr.CodeStepIncomplete), http.StatusBadRequest, "step_incomplete", ""},
		{"not found", httperr.ErrBusiness(httperr.CodeAppointmentNotFound), http.StatusNotFound, "appointment_not_found", ""},
		{"credentials", fmt.Errorf("wrapped: %w", httperr.ErrBusiness(httperr.CodeInvalidCredentials)), http.StatusUnauthorized, "invalid_credentials", ""},
		{"in flight", httperr.ErrBusiness(httperr.CodeSubmitInProgress), http.StatusConflict, "submit_in_progress", ""},
		{"rejection", &remote.RejectionError{Status: 500, Message: "Error: 500"}, http.StatusBadGateway, "backend_rejected", "Error: 500"},
		{"no server id", ucAppointment.ErrNoServerID, http.StatusBadGateway, "backend_rejected", ""},
		{"network", &remote.NetworkError{Op: "GET /getAllBookings", Err: errors.New("dial tcp: refused")}, http.StatusServiceUnavailable, "backend_unreachable", ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeError(c, tc.err)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}
			var body httperr.HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success || body.Code != tc.wantCode {
				t.Fatalf("unexpected body %+v", body)
			}
			if tc.wantMsg != "" && body.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, body.Message)
			}
		})
	}
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"", "", 1, 50},
		{"3", "20", 3, 20},
		{"-1", "500", 1, 50},
		{"x", "0", 1, 50},
	}
	for _, tc := range cases {
		page, limit := pageParams(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Fatalf("pageParams(%q, %q) = %d, %d", tc.page, tc.limit, page, limit)
		}
	}
}
