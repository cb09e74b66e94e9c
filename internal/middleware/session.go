package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// SessionCookie is the browser cookie carrying the session id.
	SessionCookie = "sid"
	// SessionIDKey is the gin context key holding the request's session id.
	SessionIDKey = "sessionID"
	// UserIDKey is the gin context key holding the authenticated user's id.
	UserIDKey = "userID"
)

// Session guarantees every request carries a usable session id. A valid
// cookie passes through untouched; anything else gets a freshly minted id
// set on the response. The store is not written here, so anonymous browsing
// costs no session writes until a handler actually mutates the cart.
func Session(ttl time.Duration, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || !isValidSessionID(id) {
			id = uuid.NewString()
			SetSessionCookie(c, id, ttl)
			log.Debugf("Middleware: Minted session %s for %s", id, c.ClientIP())
		}
		c.Set(SessionIDKey, id)
		c.Next()
	}
}

// SetSessionCookie writes the session cookie with the store's TTL as its
// lifetime. HttpOnly keeps it away from scripts; SameSite=Lax still lets
// top-level navigation carry it. Login calls this again when it rotates the
// session id.
func SetSessionCookie(c *gin.Context, id string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int(ttl.Seconds()), "/", "", false, true)
}

// ClearSessionCookie expires the session cookie on the response. Logout uses
// this together with deleting the server-side session.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// isValidSessionID accepts only UUIDs so arbitrary cookie junk never
// becomes a store key.
func isValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
