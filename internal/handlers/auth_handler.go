package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/bank-booking-portal/internal/audit"
	"github.com/BruksfildServices01/bank-booking-portal/internal/domain/wizard"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httpresp"
	"github.com/BruksfildServices01/bank-booking-portal/internal/middleware"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
	"github.com/BruksfildServices01/bank-booking-portal/internal/session"
	ucAppointment "github.com/BruksfildServices01/bank-booking-portal/internal/usecase/appointment"
)

type AuthHandler struct {
	sessions *session.Manager
	wizards  *wizard.Registry
	engine   *ucAppointment.Engine
	audit    *audit.Dispatcher
	secret   string
}

func NewAuthHandler(sessions *session.Manager, wizards *wizard.Registry, engine *ucAppointment.Engine, dispatcher *audit.Dispatcher, secret string) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		wizards:  wizards,
		engine:   engine,
		audit:    dispatcher,
		secret:   secret,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  models.Identity `json:"user"`
	Token string          `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	holder := h.sessions.Open(session.NewSessionID())
	identity, err := holder.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.generateToken(holder.SessionID(), identity)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Unable to issue a session token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:    identity.ID,
		ActorEmail: identity.Email,
		Action:     audit.ActionCustomerRegistered,
		Entity:     "customer",
		EntityID:   identity.ID,
	})

	h.refetch(c)
	httpresp.Created(c, AuthResponse{User: identity, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required.")
		return
	}

	holder := h.sessions.Open(session.NewSessionID())
	identity, err := holder.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.generateToken(holder.SessionID(), identity)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Unable to issue a session token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:    identity.ID,
		ActorEmail: identity.Email,
		Action:     audit.ActionLogin,
		Entity:     "session",
	})

	h.refetch(c)
	httpresp.OK(c, AuthResponse{User: identity, Token: token})
}

// refetch reloads the appointment list for the new session. A failed fetch
// is logged by the engine and keeps the previous list.
func (h *AuthHandler) refetch(c *gin.Context) {
	if h.engine == nil {
		return
	}
	_ = h.engine.FetchAll(c.Request.Context())
}

// Logout drops the stored identity and the session's wizard. The token
// stays signed but no longer restores a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	holder, ok := middleware.HolderFrom(c)
	if !ok {
		httperr.Unauthorized(c, "session_missing", "No active session.")
		return
	}
	identity, _ := holder.Identity()

	if err := holder.Logout(c.Request.Context()); err != nil {
		httperr.Unavailable(c, "session_store_unavailable", "Unable to end the session.")
		return
	}
	h.wizards.Drop(holder.SessionID())

	h.audit.Dispatch(audit.Event{
		ActorID:    identity.ID,
		ActorEmail: identity.Email,
		Action:     audit.ActionLogout,
		Entity:     "session",
	})

	c.JSON(http.StatusOK, httpresp.Result{Success: true})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(sid string, identity models.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid":  sid,
		"sub":  identity.ID,
		"role": identity.Role,
		"exp":  now.Add(h.sessions.TTL()).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}
