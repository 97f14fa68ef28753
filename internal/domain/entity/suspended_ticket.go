package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuspendedTicket is a ticket set aside without finalizing payment,
// typically labeled with a table name. Its lines are a frozen copy of
// the active ticket at suspend time. Names must be unique among the
// tickets currently suspended.
type SuspendedTicket struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Items      LineItems      `gorm:"type:jsonb" json:"items"`
	Subtotal   int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CustomerID *uuid.UUID     `gorm:"type:uuid" json:"customer_id,omitempty"`
	Comment    string         `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new suspended ticket
func (s *SuspendedTicket) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SuspendedTicket model
func (SuspendedTicket) TableName() string {
	return "suspended_tickets"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s SuspendedTicket) MarshalJSON() ([]byte, error) {
	type Alias SuspendedTicket
	return json.Marshal(&struct {
		Alias
		Subtotal float64 `json:"subtotal"`
	}{
		Alias:    Alias(s),
		Subtotal: float64(s.Subtotal) / 100,
	})
}

// ToTicket rebuilds an active ticket from the frozen lines. The caller
// receives an independent copy.
func (s *SuspendedTicket) ToTicket() *Ticket {
	t := &Ticket{
		Items:   make([]LineItem, len(s.Items)),
		Comment: s.Comment,
	}
	copy(t.Items, s.Items)
	if s.CustomerID != nil {
		id := *s.CustomerID
		t.CustomerID = &id
	}
	return t
}
