package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMethod is a way to settle a sale (cash, card, transfer...).
// Only active methods may be used at checkout. Cash methods allow
// over-tendering with change; non-cash methods must tender the exact
// total.
type PaymentMethod struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	IsCash    bool           `gorm:"default:false" json:"is_cash"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment method
func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentMethod model
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
