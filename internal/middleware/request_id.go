package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id to and from clients
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key the id is stored under
	RequestIDKey = "request_id"
)

// RequestID tags every request with an id for log correlation. A
// caller-supplied X-Request-ID is honored so ids stay stable across
// the frontend proxy; otherwise a fresh one is minted.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID, or "" when the
// middleware did not run
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		if requestID, ok := id.(string); ok {
			return requestID
		}
	}
	return ""
}
