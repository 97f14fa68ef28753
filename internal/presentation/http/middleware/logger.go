package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware tags every request with an ID and writes one access
// log line after the handler runs. When the request was authenticated
// the cashier's ID is included, so drawer operations can be traced back
// to a terminal session.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		actor := "-"
		if userID, ok := c.Get("user_id"); ok {
			if id, ok := userID.(uuid.UUID); ok && id != uuid.Nil {
				actor = id.String()[:8]
			}
		}

		log.Printf("[%s] %s %s | %d | %v | %s | user=%s",
			requestID[:8],
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			actor,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", requestID[:8], e.Err)
		}
	}
}
