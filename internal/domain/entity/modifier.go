package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModifierGroup is a named set of priced options attached to products
// (e.g. "Size", "Extras"). When Obligatory is true, a selection from the
// group must be made before the product can be added to a ticket.
type ModifierGroup struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Obligatory bool           `gorm:"default:false" json:"obligatory"`
	Position   int            `gorm:"default:0" json:"position"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Options []ModifierOption `gorm:"foreignKey:GroupID" json:"options,omitempty"`
}

// BeforeCreate generates a UUID before creating a new modifier group
func (g *ModifierGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ModifierGroup model
func (ModifierGroup) TableName() string {
	return "modifier_groups"
}

// FindOption returns the option with the given ID, or nil when the
// group does not contain it
func (g *ModifierGroup) FindOption(id uuid.UUID) *ModifierOption {
	for i := range g.Options {
		if g.Options[i].ID == id {
			return &g.Options[i]
		}
	}
	return nil
}

// ModifierOption is a single choice within a modifier group. Price is a
// delta added to the product's unit price and must be >= 0.
type ModifierOption struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	GroupID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"group_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Price     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Position  int            `gorm:"default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new modifier option
func (o *ModifierOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ModifierOption model
func (ModifierOption) TableName() string {
	return "modifier_options"
}

// GetPriceDecimal returns the option price delta as a decimal
func (o *ModifierOption) GetPriceDecimal() float64 {
	return float64(o.Price) / 100
}

// MarshalJSON converts ModifierOption to JSON with a decimal price
func (o ModifierOption) MarshalJSON() ([]byte, error) {
	type Alias ModifierOption
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(o),
		Price: o.GetPriceDecimal(),
	})
}
