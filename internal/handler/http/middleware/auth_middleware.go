package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainService "github.com/studytrack-io/studytrack/internal/domain/service"
)

const (
	authHeaderKey  = "Authorization"
	authTypeBearer = "Bearer"

	accessTokenCookie = "at"

	// GinContextUserIDKey holds the authenticated user id (int64) in the
	// gin context.
	GinContextUserIDKey = "userID"
)

// AuthMiddleware authenticates requests by access token, taken from the
// Authorization header or, for browser clients, the access token cookie.
// Verification is purely cryptographic; no storage is consulted.
func AuthMiddleware(tokens domainService.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "unauthorized",
			})
			return
		}

		userID, err := tokens.VerifyAccessToken(tokenString)
		if err != nil {
			logger.Warn("invalid access token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
				"code":  "invalid_token",
			})
			return
		}

		c.Set(GinContextUserIDKey, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader(authHeaderKey)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], authTypeBearer) {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(accessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

// UserID returns the authenticated user id set by AuthMiddleware, or 0
// when the request is unauthenticated.
func UserID(c *gin.Context) int64 {
	v, ok := c.Get(GinContextUserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
