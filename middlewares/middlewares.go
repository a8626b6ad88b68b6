package middlewares

import (
	"net/http"
	"strings"

	"WORKSITE/config"
	"WORKSITE/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// AuthMiddleware verifies the bearer token and plants the worker row as
// "currentWorker" for the handlers behind it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims := &config.JWTClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.NewValidationError("unexpected signing method", jwt.ValidationErrorSignatureInvalid)
			}
			return config.JWT_KEY, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		var worker models.Worker
		if err := models.DB.Preload("Team").First(&worker, "id = ?", claims.WorkerID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Worker not found"})
			return
		}

		c.Set("currentWorker", worker)
		c.Next()
	}
}

// CronAuth admits schedule-driven callers carrying the shared secret. No
// worker identity is involved.
func CronAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.CronSecret()
		if expected != "" && c.GetHeader("X-Cron-Secret") != expected {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
