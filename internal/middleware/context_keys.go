package middleware

import "github.com/gin-gonic/gin"

// userIDKey holds the authenticated user's (or admin's) ID.
// isAdminKey holds the isAdmin fact from the validated token.
const (
	userIDKey  = contextKey("userID")
	isAdminKey = contextKey("isAdmin")
)

// GetUserIDFromContext retrieves the authenticated subject ID from the Gin
// context. Returns the ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// IsAdminFromContext reports whether the current request carries a validated
// admin token.
func IsAdminFromContext(c *gin.Context) bool {
	isAdmin, ok := c.Request.Context().Value(isAdminKey).(bool)
	return ok && isAdmin
}
