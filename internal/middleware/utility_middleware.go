package middleware

import (
	"time"

	"freightquote/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CORSMiddleware configures CORS headers
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	origins := "*"
	if len(allowedOrigins) == 1 {
		origins = allowedOrigins[0]
	}

	return func(c *gin.Context) {
		origin := origins
		if origins == "*" && len(allowedOrigins) > 1 {
			requestOrigin := c.GetHeader("Origin")
			for _, allowed := range allowedOrigins {
				if allowed == requestOrigin {
					origin = requestOrigin
					break
				}
			}
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware adds a request ID to each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggingMiddleware logs one structured line per request
func LoggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		requestID := c.GetString("request_id")
		status := c.Writer.Status()

		if len(c.Errors) > 0 {
			log.WithRequestID(requestID).WithField("status", status).Error(c.Errors.String())
			return
		}
		if status >= 500 {
			log.WithRequestID(requestID).WithField("status", status).Error("request failed")
			return
		}
		log.WithField("client_ip", c.ClientIP()).
			LogAPIRequest(c.Request.Method, path, status, time.Since(start), requestID)
	}
}

// RecoveryMiddleware recovers from panics and returns a 500
func RecoveryMiddleware(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithFields(map[string]interface{}{
			"panic":      recovered,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		}).Error("panic recovered")
		c.AbortWithStatusJSON(500, gin.H{"status": "error", "error": gin.H{"code": "INTERNAL_ERROR", "message": "internal server error"}})
	})
}
