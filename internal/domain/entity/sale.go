package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale is a finalized ticket: the frozen line items, the tax breakdown
// computed at checkout, the payment taken and the change returned. It
// is produced exactly once by checkout and handed to persistence,
// printing and invoicing untouched.
type Sale struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Number          string         `gorm:"size:100;unique;not null" json:"number"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	SessionID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"session_id"`
	CustomerID      *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Items           LineItems      `gorm:"type:jsonb" json:"items"`
	Subtotal        int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxTotal        int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total           int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethodID uuid.UUID      `gorm:"type:uuid;not null" json:"payment_method_id"`
	PaymentMethod   string         `gorm:"size:255" json:"payment_method"`
	Tendered        int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Change          int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Comment         string         `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Taxes    []SaleTax `gorm:"foreignKey:SaleID" json:"taxes,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Subtotal float64 `json:"subtotal"`
		TaxTotal float64 `json:"tax_total"`
		Total    float64 `json:"total"`
		Tendered float64 `json:"tendered"`
		Change   float64 `json:"change"`
	}{
		Alias:    Alias(s),
		Subtotal: float64(s.Subtotal) / 100,
		TaxTotal: float64(s.TaxTotal) / 100,
		Total:    float64(s.Total) / 100,
		Tendered: float64(s.Tendered) / 100,
		Change:   float64(s.Change) / 100,
	})
}

// SaleTax is one tax rule's contribution to a finalized sale, kept for
// receipt and report fidelity.
type SaleTax struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"sale_id"`
	Name      string       `gorm:"size:255;not null" json:"name"`
	Rate      float64      `gorm:"not null" json:"rate"`
	Type      enum.TaxType `gorm:"default:0" json:"type"`
	Amount    int64        `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time    `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new sale tax row
func (t *SaleTax) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleTax model
func (SaleTax) TableName() string {
	return "sale_taxes"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t SaleTax) MarshalJSON() ([]byte, error) {
	type Alias SaleTax
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(t),
		Amount: float64(t.Amount) / 100,
	})
}
