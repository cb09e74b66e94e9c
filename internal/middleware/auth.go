package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
)

// UserGetter is the slice of the auth use case the admin guard needs.
type UserGetter interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// RequireAuth resolves the request's session and rejects it unless a user
// is logged in. Runs after Session, so a session id is always present.
func RequireAuth(sessions domain.SessionStore, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString(SessionIDKey)

		sess, err := sessions.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			if !errors.Is(err, domain.ErrSessionNotFound) {
				log.Errorf("Middleware: Failed to load session %s: %v", sessionID, err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"Status": "Fail", "Message": "Session lookup failed"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Status": "Fail", "Message": "Authentication required"})
			return
		}
		if !sess.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Status": "Fail", "Message": "Authentication required"})
			return
		}

		c.Set(UserIDKey, *sess.UserID)
		c.Next()
	}
}

// RequireAdmin lets only admin accounts through. Runs after RequireAuth, so
// the user id is already on the context; the account is re-read on every
// request so a revoked admin flag takes effect immediately.
func RequireAdmin(users UserGetter, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(UserIDKey)

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				log.Warnf("Middleware: Session references missing user %d", userID)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Status": "Fail", "Message": "Authentication required"})
				return
			}
			log.Errorf("Middleware: Failed to load user %d: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"Status": "Fail", "Message": "User lookup failed"})
			return
		}
		if !user.IsAdmin {
			log.Warnf("Middleware: User %d denied access to admin surface", userID)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"Status": "Fail", "Message": "Admin access required"})
			return
		}

		c.Next()
	}
}
