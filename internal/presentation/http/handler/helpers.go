package handler

import (
	"math"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// toCents converts a decimal wire amount to cents
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// GetUserID extracts the authenticated user ID from the gin context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}
