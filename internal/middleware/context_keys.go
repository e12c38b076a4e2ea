package middleware

import "github.com/gin-gonic/gin"

// SessionHeader carries the caller's live session identifier. The economy
// operations resolve it to a durable character through the resolver port.
const SessionHeader = "X-Session-ID"

const sessionIDKey = contextKey("sessionID")

// SessionMiddleware copies the session header into the Gin context so handlers
// do not reach into raw headers.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid := c.GetHeader(SessionHeader); sid != "" {
			c.Set(string(sessionIDKey), sid)
		}
		c.Next()
	}
}

// GetSessionIDFromContext retrieves the caller's session id and whether one
// was supplied.
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(sessionIDKey))
	if !exists {
		return "", false
	}
	sid, ok := val.(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}
