package service

import (
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/pkg/apperror"
)

// TicketEngine mutates the active ticket: adding products, changing
// quantities, removing lines, clearing. Stock enforcement is a global
// toggle fixed at construction; when disabled, stock ceilings are
// ignored entirely.
type TicketEngine struct {
	stockEnforced bool
}

// NewTicketEngine creates a new ticket engine
func NewTicketEngine(stockEnforced bool) *TicketEngine {
	return &TicketEngine{stockEnforced: stockEnforced}
}

// AddItem adds one unit of the product with the resolved modifier
// selection. When a line with the same identity key already exists its
// quantity is incremented; otherwise a new line is appended at the end,
// freezing the product name, unit price and stock snapshot.
func (e *TicketEngine) AddItem(t *entity.Ticket, product *entity.Product, sel *ResolvedSelection) error {
	key := product.ID.String()
	var delta int64
	var options []entity.ChosenOption
	if sel != nil {
		key = sel.Key
		delta = sel.PriceDelta
		options = sel.Options
	}

	if idx := t.FindLine(key); idx >= 0 {
		line := &t.Items[idx]
		if e.stockEnforced && line.Quantity+1 > line.MaxStock {
			return apperror.ErrInsufficientStock.WithDetail(line.Name)
		}
		line.Quantity++
		line.Recompute()
		return nil
	}

	if e.stockEnforced && product.Stock < 1 {
		return apperror.ErrInsufficientStock.WithDetail(product.Name)
	}

	line := entity.LineItem{
		ID:        key,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price + delta,
		Quantity:  1,
		Options:   options,
		MaxStock:  product.Stock,
	}
	line.Recompute()
	t.Items = append(t.Items, line)
	return nil
}

// UpdateQuantity applies a signed delta to a line's quantity. A
// resulting quantity of zero or less removes the line; a delta that
// would exceed the line's stock ceiling is rejected leaving the
// quantity unchanged.
func (e *TicketEngine) UpdateQuantity(t *entity.Ticket, lineID string, delta int) error {
	idx := t.FindLine(lineID)
	if idx < 0 {
		return apperror.NewNotFoundError("Line item")
	}

	line := &t.Items[idx]
	newQty := line.Quantity + delta
	if newQty <= 0 {
		t.Items = append(t.Items[:idx], t.Items[idx+1:]...)
		return nil
	}
	if e.stockEnforced && newQty > line.MaxStock {
		return apperror.ErrInsufficientStock.WithDetail(line.Name)
	}

	line.Quantity = newQty
	line.Recompute()
	return nil
}

// RemoveItem removes a line regardless of its quantity.
func (e *TicketEngine) RemoveItem(t *entity.Ticket, lineID string) error {
	idx := t.FindLine(lineID)
	if idx < 0 {
		return apperror.NewNotFoundError("Line item")
	}
	t.Items = append(t.Items[:idx], t.Items[idx+1:]...)
	return nil
}

// Clear empties the ticket: lines, customer and comment all reset.
func (e *TicketEngine) Clear(t *entity.Ticket) {
	*t = entity.Ticket{Items: []entity.LineItem{}}
}
