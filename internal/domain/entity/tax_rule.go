package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// TaxRule is a named tax applied to the ticket subtotal. Every active
// rule applies independently against the pre-tax subtotal; rules never
// compound on each other's output.
type TaxRule struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Rate      float64        `gorm:"not null" json:"rate"` // percentage, 0-100
	Type      enum.TaxType   `gorm:"default:0" json:"type"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax rule
func (t *TaxRule) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxRule model
func (TaxRule) TableName() string {
	return "tax_rules"
}
