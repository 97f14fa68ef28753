package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateSaleNumber generates a unique sale number
func GenerateSaleNumber() string {
	return "FAC-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateSessionNumber generates a unique cash session number
func GenerateSessionNumber() string {
	return "CAJA-" + strings.ToUpper(uuid.New().String()[:8])
}
