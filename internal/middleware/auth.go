package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mechapp/internal/auth"
	"github.com/BruksfildServices01/mechapp/internal/httperr"
	"github.com/BruksfildServices01/mechapp/internal/infra/session"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextSessionID = "sessionID"
)

// AuthMiddleware accepts the session cookie or an Authorization bearer
// token. The token only carries the session id; the session itself must
// still exist in the store.
func AuthMiddleware(tokens *auth.Tokens, sessions session.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := SessionToken(c)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "missing_session", "Inicia sesión para continuar.")
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Tu sesión no es válida.")
			return
		}

		data, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.Error("session lookup failed", zap.Error(err))
			}
			httperr.Abort(c, http.StatusUnauthorized, "session_expired", "Tu sesión expiró.")
			return
		}

		if data.UserID != claims.UserID {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Tu sesión no es válida.")
			return
		}

		c.Set(ContextUserID, data.UserID)
		c.Set(ContextUserRole, data.Role)
		c.Set(ContextSessionID, claims.SessionID)

		c.Next()
	}
}

// SessionToken reads the cookie first, then an Authorization bearer header.
func SessionToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie != "" {
		return cookie, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Abort(c, http.StatusForbidden, "forbidden", "No tienes permiso para esta acción.")
	}
}

// UserID reads the authenticated user set by AuthMiddleware.
func UserID(c *gin.Context) uint {
	return c.MustGet(ContextUserID).(uint)
}

func UserRole(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}
