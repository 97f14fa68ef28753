package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// CashSession is the accounting period between opening and closing a
// physical cash drawer on one terminal. It accumulates the count and
// sum of sales recorded while open; once closed it is immutable.
type CashSession struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Number       string             `gorm:"size:100;unique;not null" json:"number"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Terminal     string             `gorm:"size:100;not null;index" json:"terminal"`
	Status       enum.SessionStatus `gorm:"default:0" json:"status"`
	OpeningFloat int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	SalesCount   int                `gorm:"default:0" json:"sales_count"`
	SalesTotal   int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CountedCash  *int64             `json:"-"`                  // Set only at close, cents
	Variance     *int64             `json:"-"`                  // counted - expected, cents
	OpenedAt     time.Time          `json:"opened_at"`
	ClosedAt     *time.Time         `json:"closed_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	MethodSales []SessionMethodSales `gorm:"foreignKey:SessionID" json:"method_sales,omitempty"`
}

// BeforeCreate generates a UUID before creating a new cash session
func (s *CashSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashSession model
func (CashSession) TableName() string {
	return "cash_sessions"
}

// IsOpen reports whether the session still accepts sales.
func (s *CashSession) IsOpen() bool {
	return s.Status == enum.SessionStatusOpen
}

// Expected returns the cash expected in the drawer: opening float plus
// the running sum of sales.
func (s *CashSession) Expected() int64 {
	return s.OpeningFloat + s.SalesTotal
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s CashSession) MarshalJSON() ([]byte, error) {
	type Alias CashSession
	out := &struct {
		Alias
		OpeningFloat float64  `json:"opening_float"`
		SalesTotal   float64  `json:"sales_total"`
		Expected     float64  `json:"expected"`
		CountedCash  *float64 `json:"counted_cash,omitempty"`
		Variance     *float64 `json:"variance,omitempty"`
	}{
		Alias:        Alias(s),
		OpeningFloat: float64(s.OpeningFloat) / 100,
		SalesTotal:   float64(s.SalesTotal) / 100,
		Expected:     float64(s.Expected()) / 100,
	}
	if s.CountedCash != nil {
		c := float64(*s.CountedCash) / 100
		out.CountedCash = &c
	}
	if s.Variance != nil {
		v := float64(*s.Variance) / 100
		out.Variance = &v
	}
	return json.Marshal(out)
}

// SessionMethodSales accumulates sales per payment method within one
// cash session, for the close report breakdown.
type SessionMethodSales struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	MethodID   uuid.UUID `gorm:"type:uuid;not null" json:"method_id"`
	MethodName string    `gorm:"size:255;not null" json:"method_name"`
	Count      int       `gorm:"default:0" json:"count"`
	Total      int64     `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new method breakdown row
func (m *SessionMethodSales) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SessionMethodSales model
func (SessionMethodSales) TableName() string {
	return "cash_session_method_sales"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m SessionMethodSales) MarshalJSON() ([]byte, error) {
	type Alias SessionMethodSales
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(m),
		Total: float64(m.Total) / 100,
	})
}
