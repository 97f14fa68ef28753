package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ChosenOption is a modifier option frozen onto a line item. Name and
// price are copied at add-time so receipts stay faithful even if the
// catalog changes later.
type ChosenOption struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price int64     `json:"price"` // cents
}

// LineItem is one line of a ticket. Its ID is the identity key: product
// ID plus the sorted IDs of the chosen options, so the same product with
// a different option combination is a distinct line.
type LineItem struct {
	ID        string         `json:"id"`
	ProductID uuid.UUID      `json:"product_id"`
	Name      string         `json:"name"`
	UnitPrice int64          `json:"unit_price"` // cents, base price + option deltas
	Quantity  int            `json:"quantity"`
	Subtotal  int64          `json:"subtotal"` // cents, always UnitPrice * Quantity
	Options   []ChosenOption `json:"options,omitempty"`
	MaxStock  int            `json:"max_stock"` // stock snapshot at add-time; 0 when unknown
}

// Recompute re-derives the line subtotal from unit price and quantity.
// Called after every quantity mutation; the subtotal is never carried
// over independently.
func (li *LineItem) Recompute() {
	li.Subtotal = li.UnitPrice * int64(li.Quantity)
}

// LineKey derives the identity key for a product and a chosen option
// set. The option IDs are sorted so the same combination always maps to
// the same key regardless of selection order.
func LineKey(productID uuid.UUID, optionIDs []uuid.UUID) string {
	if len(optionIDs) == 0 {
		return productID.String()
	}
	ids := make([]string, len(optionIDs))
	for i, id := range optionIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)
	return productID.String() + "|" + strings.Join(ids, "+")
}

// LineItems is a JSON-serialized line item list, stored as a single
// column on suspended tickets.
type LineItems []LineItem

// Value implements driver.Valuer for database storage
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for database retrieval
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for LineItems")
}

// Ticket is the active, in-progress cart. It has no identity of its
// own; it only acquires an ID once suspended. Lines keep insertion
// order and are never re-sorted.
type Ticket struct {
	Items      []LineItem `json:"items"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	Comment    string     `json:"comment,omitempty"`

	// SuspendedID is set when the ticket was loaded from a suspended
	// ticket, so a later suspend re-saves under the same identity.
	SuspendedID *uuid.UUID `json:"-"`
}

// NewTicket returns an empty ticket.
func NewTicket() *Ticket {
	return &Ticket{Items: []LineItem{}}
}

// Subtotal returns the sum of all line subtotals in cents.
func (t *Ticket) Subtotal() int64 {
	var sum int64
	for i := range t.Items {
		sum += t.Items[i].Subtotal
	}
	return sum
}

// TotalUnits returns the total unit count across all lines.
func (t *Ticket) TotalUnits() int {
	var n int
	for i := range t.Items {
		n += t.Items[i].Quantity
	}
	return n
}

// IsEmpty reports whether the ticket has no line items.
func (t *Ticket) IsEmpty() bool {
	return len(t.Items) == 0
}

// FindLine returns the index of the line with the given identity key,
// or -1 when absent.
func (t *Ticket) FindLine(lineID string) int {
	for i := range t.Items {
		if t.Items[i].ID == lineID {
			return i
		}
	}
	return -1
}

// LineNameFor returns the display name of the first line holding the
// given product, or the product ID string when no line matches.
func (t *Ticket) LineNameFor(productID uuid.UUID) string {
	for i := range t.Items {
		if t.Items[i].ProductID == productID {
			return t.Items[i].Name
		}
	}
	return productID.String()
}

// Clone returns a deep copy of the ticket. Used when freezing lines
// into a suspended ticket so later cart mutations cannot leak into the
// saved copy.
func (t *Ticket) Clone() *Ticket {
	c := &Ticket{
		Items:   make([]LineItem, len(t.Items)),
		Comment: t.Comment,
	}
	copy(c.Items, t.Items)
	for i := range c.Items {
		if len(t.Items[i].Options) > 0 {
			c.Items[i].Options = make([]ChosenOption, len(t.Items[i].Options))
			copy(c.Items[i].Options, t.Items[i].Options)
		}
	}
	if t.CustomerID != nil {
		id := *t.CustomerID
		c.CustomerID = &id
	}
	return c
}
