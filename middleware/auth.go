package middleware

import (
	"net/http"

	"resource-booking-backend/models"
	"resource-booking-backend/services"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the http-only cookie carrying the opaque session token.
const SessionCookie = "booking_session"

const userKey = "currentUser"

// Auth resolves the acting user from the session cookie and aborts with 401
// when there is none.
func Auth(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		user, err := sessions.Resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user Auth stored on the context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
