package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bank-booking-portal/internal/config"
	"github.com/BruksfildServices01/bank-booking-portal/internal/customercache"
	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/domain/wizard"
	"github.com/BruksfildServices01/bank-booking-portal/internal/infra/memory"
	"github.com/BruksfildServices01/bank-booking-portal/internal/middleware"
	"github.com/BruksfildServices01/bank-booking-portal/internal/session"
	"github.com/BruksfildServices01/bank-booking-portal/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/bank-booking-portal/internal/usecase/appointment"
)

// Monday 2026-01-12 10:00.
var testNow = time.Date(2026, time.January, 12, 10, 0, 0, 0, time.UTC)

type harness struct {
	router   *gin.Engine
	engine   *ucAppointment.Engine
	store    *memory.Store
	sessions *session.MemoryStore
}

func newHarness(t *testing.T, loginLimit int) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.Seeded()
	clock := timezone.Fixed(testNow)
	slots := domain.DefaultSlots()

	engine := ucAppointment.NewEngine(store.Bookings(), customercache.New(store.Customers(), nil), ucAppointment.Options{
		Clock:   clock,
		Catalog: slots,
	})
	if err := engine.FetchAll(context.Background()); err != nil {
		t.Fatalf("initial fetch: %v", err)
	}

	accounts, err := session.DefaultDemoAccounts()
	if err != nil {
		t.Fatalf("demo accounts: %v", err)
	}
	sessionStore := session.NewMemoryStore()
	directory := session.NewDirectoryAuthenticator(store.Customers(), nil)
	manager := session.NewManager(
		sessionStore,
		session.ChainAuthenticator{session.NewDemoAuthenticator(accounts...), directory},
		store.Customers(),
		session.ManagerOptions{TTL: time.Hour},
	)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:       &config.Config{JWTSecret: "test-secret"},
		Sessions:     manager,
		Wizards:      wizard.NewRegistry(slots),
		Engine:       engine,
		Customers:    store.Customers(),
		LoginLimiter: middleware.NewMemoryLimiter(loginLimit),
		Clock:        clock,
		Slots:        slots,
	})

	return &harness{router: r, engine: engine, store: store, sessions: sessionStore}
}

func (h *harness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) login(t *testing.T, email, password string) string {
	t.Helper()

	w := h.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Fatalf("login %s: empty token", email)
	}
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Code    string `json:"error_code"`
	}
	decode(t, w, &body)
	if body.Success {
		t.Fatalf("error body reports success: %s", w.Body.String())
	}
	return body.Code
}

type wizardView struct {
	Step           int    `json:"step"`
	Confirmed      bool   `json:"confirmed"`
	ConfirmationID string `json:"confirmationId"`
	Appointment    *struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"appointment"`
}

// ======================================================
// CATALOG
// ======================================================

func TestCatalogIsPublic(t *testing.T) {
	h := newHarness(t, 10)

	w := h.do(t, http.MethodGet, "/api/catalog/services", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("services: expected 200, got %d", w.Code)
	}
	var services struct {
		Total int `json:"total"`
	}
	decode(t, w, &services)
	if services.Total != 6 {
		t.Fatalf("expected 6 services, got %d", services.Total)
	}

	w = h.do(t, http.MethodGet, "/api/catalog/slots?date=2026-01-12", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("slots: expected 200, got %d", w.Code)
	}
	var slots struct {
		DateSelectable bool `json:"dateSelectable"`
		Slots          []struct {
			Time       string `json:"time"`
			Selectable bool   `json:"selectable"`
		} `json:"slots"`
	}
	decode(t, w, &slots)
	if !slots.DateSelectable {
		t.Fatalf("today should be selectable")
	}
	selectable := map[string]bool{}
	for _, s := range slots.Slots {
		selectable[s.Time] = s.Selectable
	}
	if selectable["10:00 AM"] {
		t.Fatalf("10:00 AM must not be selectable at 10:00")
	}
	if !selectable["10:30 AM"] {
		t.Fatalf("10:30 AM should be selectable at 10:00")
	}

	w = h.do(t, http.MethodGet, "/api/catalog/slots?date=tomorrow", "", nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_date" {
		t.Fatalf("expected 400 invalid_date, got %d: %s", w.Code, w.Body.String())
	}
}

// ======================================================
// AUTH
// ======================================================

func TestLoginAndSessionLifecycle(t *testing.T) {
	h := newHarness(t, 10)

	if w := h.do(t, http.MethodGet, "/api/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	token := h.login(t, "john.smith@email.com", "demo123")

	w := h.do(t, http.MethodGet, "/api/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var me struct {
		User struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, w, &me)
	if me.User.ID != "user-1" || me.User.Role != "customer" {
		t.Fatalf("unexpected identity %+v", me.User)
	}

	if w := h.do(t, http.MethodPost, "/api/auth/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}
	if h.sessions.Len() != 0 {
		t.Fatalf("expected session store to be empty after logout, got %d", h.sessions.Len())
	}

	w = h.do(t, http.MethodGet, "/api/me", token, nil)
	if w.Code != http.StatusUnauthorized || errorCode(t, w) != "session_expired" {
		t.Fatalf("expected session_expired after logout, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHarness(t, 10)

	w := h.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "john.smith@email.com",
		"password": "not-the-password",
	})
	if w.Code != http.StatusUnauthorized || errorCode(t, w) != "invalid_credentials" {
		t.Fatalf("expected 401 invalid_credentials, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterSignsIn(t *testing.T) {
	h := newHarness(t, 10)

	w := h.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Thandi Mokoena",
		"email":    "thandi@example.com",
		"password": "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		User struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	if resp.User.ID == "" || resp.User.Role != "customer" || resp.Token == "" {
		t.Fatalf("unexpected register response %+v", resp)
	}

	if w := h.do(t, http.MethodGet, "/api/me", resp.Token, nil); w.Code != http.StatusOK {
		t.Fatalf("me after register: expected 200, got %d", w.Code)
	}

	w = h.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Thandi Again",
		"email":    "THANDI@example.com",
		"password": "secret1",
	})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "email_taken" {
		t.Fatalf("expected email_taken, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	h := newHarness(t, 2)

	body := map[string]string{"email": "nobody@example.com", "password": "x"}
	for i := 0; i < 2; i++ {
		if w := h.do(t, http.MethodPost, "/api/auth/login", "", body); w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, w.Code)
		}
	}
	w := h.do(t, http.MethodPost, "/api/auth/login", "", body)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", w.Code)
	}
}

// ======================================================
// WIZARD
// ======================================================

func TestWizardBookingFlow(t *testing.T) {
	h := newHarness(t, 10)
	token := h.login(t, "john.smith@email.com", "demo123")

	if w := h.do(t, http.MethodPost, "/api/booking/wizard", token, nil); w.Code != http.StatusCreated {
		t.Fatalf("start: expected 201, got %d", w.Code)
	}

	w := h.do(t, http.MethodPost, "/api/booking/wizard/next", token, nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "step_incomplete" {
		t.Fatalf("expected step_incomplete, got %d: %s", w.Code, w.Body.String())
	}

	steps := []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, "/api/booking/wizard/service", map[string]string{"id": "credit"}},
		{http.MethodPost, "/api/booking/wizard/next", nil},
		{http.MethodPut, "/api/booking/wizard/branch", map[string]string{"id": "downtown"}},
		{http.MethodPost, "/api/booking/wizard/next", nil},
		{http.MethodPut, "/api/booking/wizard/date", map[string]string{"date": "2026-01-13"}},
		{http.MethodPut, "/api/booking/wizard/time", map[string]string{"time": "10:00 AM"}},
		{http.MethodPost, "/api/booking/wizard/next", nil},
		{http.MethodPut, "/api/booking/wizard/contact", map[string]string{"name": "John Smith", "email": "john.smith@email.com"}},
		{http.MethodPost, "/api/booking/wizard/next", nil},
	}
	for _, s := range steps {
		if w := h.do(t, s.method, s.path, token, s.body); w.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200, got %d: %s", s.method, s.path, w.Code, w.Body.String())
		}
	}

	w = h.do(t, http.MethodGet, "/api/booking/wizard", token, nil)
	var view wizardView
	decode(t, w, &view)
	if view.Step != int(wizard.StepConfirm) {
		t.Fatalf("expected confirm step, got %d", view.Step)
	}

	w = h.do(t, http.MethodPost, "/api/booking/wizard/confirm", token, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("confirm: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	decode(t, w, &view)
	if !view.Confirmed || !strings.HasPrefix(view.ConfirmationID, "CB-") {
		t.Fatalf("unexpected confirmation %+v", view)
	}
	if view.Appointment == nil || view.Appointment.ID == "" || strings.HasPrefix(view.Appointment.ID, "draft-") {
		t.Fatalf("expected a server appointment id, got %+v", view.Appointment)
	}
	if view.Appointment.Status != "pending" {
		t.Fatalf("expected pending booking, got %q", view.Appointment.Status)
	}

	w = h.do(t, http.MethodPost, "/api/booking/wizard/confirm", token, nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "already_confirmed" {
		t.Fatalf("expected already_confirmed on second confirm, got %d: %s", w.Code, w.Body.String())
	}

	w = h.do(t, http.MethodGet, "/api/me/appointments", token, nil)
	var mine struct {
		Upcoming []struct {
			ID string `json:"id"`
		} `json:"upcoming"`
		Past []struct {
			ID string `json:"id"`
		} `json:"past"`
	}
	decode(t, w, &mine)
	if len(mine.Upcoming) != 2 || len(mine.Past) != 1 {
		t.Fatalf("expected 2 upcoming and 1 past, got %d and %d", len(mine.Upcoming), len(mine.Past))
	}
}

func TestWizardRejectsPastSlot(t *testing.T) {
	h := newHarness(t, 10)
	token := h.login(t, "john.smith@email.com", "demo123")

	h.do(t, http.MethodPost, "/api/booking/wizard", token, nil)
	h.do(t, http.MethodPut, "/api/booking/wizard/date", token, map[string]string{"date": "2026-01-12"})

	w := h.do(t, http.MethodPut, "/api/booking/wizard/time", token, map[string]string{"time": "9:30 AM"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "slot_unavailable" {
		t.Fatalf("expected slot_unavailable, got %d: %s", w.Code, w.Body.String())
	}

	w = h.do(t, http.MethodPut, "/api/booking/wizard/date", token, map[string]string{"date": "2026-01-17"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_date" {
		t.Fatalf("expected invalid_date for a saturday, got %d: %s", w.Code, w.Body.String())
	}
}

// ======================================================
// CUSTOMER APPOINTMENTS
// ======================================================

func TestCustomerCannotTouchOthersAppointments(t *testing.T) {
	h := newHarness(t, 10)
	token := h.login(t, "john.smith@email.com", "demo123")

	// Booking 2 belongs to user-2.
	w := h.do(t, http.MethodPatch, "/api/me/appointments/2/cancel", token, nil)
	if w.Code != http.StatusNotFound || errorCode(t, w) != "appointment_not_found" {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if row, _ := h.engine.Get("2"); row.Status != "pending" {
		t.Fatalf("foreign appointment changed to %q", row.Status)
	}
}

func TestLoginRefetchesAppointments(t *testing.T) {
	h := newHarness(t, 10)

	// Changed behind the portal's back.
	if _, err := h.store.Bookings().UpdateStatus(context.Background(), "1", domain.StatusCancelled); err != nil {
		t.Fatalf("backend update: %v", err)
	}
	if row, _ := h.engine.Get("1"); row.Status != "confirmed" {
		t.Fatalf("expected stale confirmed row before login, got %q", row.Status)
	}

	h.login(t, "john.smith@email.com", "demo123")
	if row, _ := h.engine.Get("1"); row.Status != "cancelled" {
		t.Fatalf("login did not refetch, status %q", row.Status)
	}
}

func TestCustomerCancelsOwnAppointment(t *testing.T) {
	h := newHarness(t, 10)
	token := h.login(t, "john.smith@email.com", "demo123")

	w := h.do(t, http.MethodPatch, "/api/me/appointments/1/cancel", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if row, _ := h.engine.Get("1"); row.Status != "cancelled" {
		t.Fatalf("expected cancelled, got %q", row.Status)
	}

	w = h.do(t, http.MethodPatch, "/api/me/appointments/1", token, map[string]string{"time": "11:00 AM"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "appointment_cancelled" {
		t.Fatalf("expected appointment_cancelled on reschedule, got %d: %s", w.Code, w.Body.String())
	}
}

// ======================================================
// ADMIN
// ======================================================

func TestAdminRoutesRequireAdmin(t *testing.T) {
	h := newHarness(t, 10)
	token := h.login(t, "john.smith@email.com", "demo123")

	w := h.do(t, http.MethodGet, "/api/admin/appointments", token, nil)
	if w.Code != http.StatusForbidden || errorCode(t, w) != "forbidden" {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminConfirmsPendingAppointment(t *testing.T) {
	h := newHarness(t, 10)
	token := h.login(t, "admin@capitecbank.example", "admin123")

	w := h.do(t, http.MethodPatch, "/api/admin/appointments/2/status", token, map[string]string{"status": "confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	want := map[string]string{"1": "confirmed", "2": "confirmed", "3": "completed"}
	for _, row := range h.engine.Snapshot() {
		if row.Status != want[row.ID] {
			t.Fatalf("row %s: expected %s, got %s", row.ID, want[row.ID], row.Status)
		}
	}

	w = h.do(t, http.MethodPatch, "/api/admin/appointments/3/status", token, map[string]string{"status": "pending"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "invalid_transition" {
		t.Fatalf("expected invalid_transition, got %d: %s", w.Code, w.Body.String())
	}

	w = h.do(t, http.MethodGet, "/api/admin/stats", token, nil)
	var stats struct {
		Total     int `json:"total"`
		Confirmed int `json:"confirmed"`
		Pending   int `json:"pending"`
	}
	decode(t, w, &stats)
	if stats.Total != 3 || stats.Confirmed != 2 || stats.Pending != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestAdminListFiltersAndCustomers(t *testing.T) {
	h := newHarness(t, 10)
	token := h.login(t, "admin@capitecbank.example", "admin123")

	w := h.do(t, http.MethodGet, "/api/admin/appointments?q=sarah", token, nil)
	var list struct {
		Data []struct {
			ID           string `json:"id"`
			CustomerName string `json:"customerName"`
		} `json:"data"`
	}
	decode(t, w, &list)
	if len(list.Data) != 1 || list.Data[0].ID != "2" || list.Data[0].CustomerName != "Sarah Johnson" {
		t.Fatalf("unexpected filter result %+v", list.Data)
	}

	w = h.do(t, http.MethodGet, "/api/admin/customers?query=john", token, nil)
	var customers struct {
		Total int `json:"total"`
	}
	decode(t, w, &customers)
	// John Smith and Sarah Johnson.
	if customers.Total != 2 {
		t.Fatalf("expected 2 customers matching john, got %d", customers.Total)
	}

	w = h.do(t, http.MethodGet, "/api/admin/audit-logs", token, nil)
	if w.Code != http.StatusServiceUnavailable || errorCode(t, w) != "audit_disabled" {
		t.Fatalf("expected audit_disabled, got %d: %s", w.Code, w.Body.String())
	}
}
