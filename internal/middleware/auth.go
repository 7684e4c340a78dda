package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/savr_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// extractBearerToken pulls the raw token out of the Authorization header.
func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// validateToken parses the bearer token and aborts with 401 on any failure.
// Returns the claims when the token is valid.
func validateToken(c *gin.Context, jwtSecret string) (*utils.AppClaims, bool) {
	logger := GetLoggerFromCtx(c.Request.Context())

	tokenString, ok := extractBearerToken(c)
	if !ok {
		logger.Warn("Authorization header missing or malformed")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
		return nil, false
	}

	claims, err := utils.ParseAndValidateJWT(tokenString, jwtSecret)
	if err != nil {
		logger.Warn("Invalid token", "error", err)
		msg := "Invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "Token has expired"
		} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
			msg = "Token not valid yet"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return nil, false
	}

	if claims.Subject == "" {
		logger.Error("Subject missing from valid token")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return nil, false
	}

	return claims, true
}

// storeIdentity places the validated identity facts and an enriched logger
// into the request context. Downstream code consumes only these facts, never
// the raw token.
func storeIdentity(c *gin.Context, subjectID string, isAdmin bool) {
	logger := GetLoggerFromCtx(c.Request.Context())
	enrichedLogger := logger.With(slog.String("user_id", subjectID))

	ctx := context.WithValue(c.Request.Context(), userIDKey, subjectID)
	ctx = context.WithValue(ctx, isAdminKey, isAdmin)
	ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
	c.Request = c.Request.WithContext(ctx)
}

// AuthMiddleware creates a Gin middleware handler that validates user JWT tokens.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := validateToken(c, jwtSecret)
		if !ok {
			return
		}
		storeIdentity(c, claims.Subject, claims.IsAdmin)
		c.Next()
	}
}

// AdminAuthMiddleware validates the token and additionally requires the
// isAdmin claim. Non-admin tokens are rejected with 403.
func AdminAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := validateToken(c, jwtSecret)
		if !ok {
			return
		}
		if !claims.IsAdmin {
			GetLoggerFromCtx(c.Request.Context()).Warn("Non-admin token on admin route", slog.String("subject", claims.Subject))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		storeIdentity(c, claims.Subject, true)
		c.Next()
	}
}
