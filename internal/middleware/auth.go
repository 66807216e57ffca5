package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/bank-booking-portal/internal/audit"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
	"github.com/BruksfildServices01/bank-booking-portal/internal/session"
)

const (
	ContextSessionID = "sessionID"
	ContextHolder    = "sessionHolder"
	ContextIdentity  = "identity"
)

// AuthMiddleware verifies the bearer token and restores the session it
// names. A token whose session was logged out or expired is rejected.
func AuthMiddleware(secret string, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a Bearer token.")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Invalid token claims.")
			return
		}

		sid, _ := claims["sid"].(string)
		if sid == "" {
			httperr.Unauthorized(c, "invalid_token_payload", "Token carries no session.")
			return
		}

		holder := sessions.Open(sid)
		if err := holder.Init(c.Request.Context()); err != nil {
			httperr.Unavailable(c, "session_store_unavailable", "Unable to restore the session.")
			return
		}
		identity, ok := holder.Identity()
		if !ok {
			httperr.Unauthorized(c, "session_expired", "Session expired, please sign in again.")
			return
		}

		c.Set(ContextSessionID, sid)
		c.Set(ContextHolder, holder)
		c.Set(ContextIdentity, identity)
		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), audit.Actor{
			ID:    identity.ID,
			Email: identity.Email,
		}))

		c.Next()
	}
}

// RequireRole lets through identities with the given role only.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || identity.Role != role {
			httperr.Forbidden(c, httperr.CodeForbidden, "Insufficient permissions.")
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

func HolderFrom(c *gin.Context) (*session.Holder, bool) {
	v, ok := c.Get(ContextHolder)
	if !ok {
		return nil, false
	}
	h, ok := v.(*session.Holder)
	return h, ok
}
