package service

import (
	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
)

// TicketView is the API shape of the active ticket: the lines plus the
// totals computed against the currently active tax rules. Amounts are
// decimals.
type TicketView struct {
	Items      []LineItemView `json:"items"`
	CustomerID *uuid.UUID     `json:"customer_id,omitempty"`
	Comment    string         `json:"comment,omitempty"`
	Units      int            `json:"units"`
	Subtotal   float64        `json:"subtotal"`
	Taxes      []TaxLineView  `json:"taxes"`
	TaxTotal   float64        `json:"tax_total"`
	Total      float64        `json:"total"`
}

// LineItemView is the API shape of one ticket line
type LineItemView struct {
	ID        string             `json:"id"`
	ProductID uuid.UUID          `json:"product_id"`
	Name      string             `json:"name"`
	UnitPrice float64            `json:"unit_price"`
	Quantity  int                `json:"quantity"`
	Subtotal  float64            `json:"subtotal"`
	Options   []ChosenOptionView `json:"options,omitempty"`
}

// ChosenOptionView is the API shape of a chosen modifier option
type ChosenOptionView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

// TaxLineView is the API shape of one tax rule's contribution
type TaxLineView struct {
	Name   string       `json:"name"`
	Rate   float64      `json:"rate"`
	Type   enum.TaxType `json:"type"`
	Amount float64      `json:"amount"`
}

func buildTicketView(t *entity.Ticket, bd TaxBreakdown) *TicketView {
	view := &TicketView{
		Items:      make([]LineItemView, 0, len(t.Items)),
		CustomerID: t.CustomerID,
		Comment:    t.Comment,
		Units:      t.TotalUnits(),
		Subtotal:   float64(bd.Subtotal) / 100,
		Taxes:      make([]TaxLineView, 0, len(bd.PerRule)),
		TaxTotal:   float64(bd.TaxTotal) / 100,
		Total:      float64(bd.GrandTotal) / 100,
	}
	for i := range t.Items {
		line := &t.Items[i]
		lv := LineItemView{
			ID:        line.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: float64(line.UnitPrice) / 100,
			Quantity:  line.Quantity,
			Subtotal:  float64(line.Subtotal) / 100,
		}
		for _, opt := range line.Options {
			lv.Options = append(lv.Options, ChosenOptionView{
				ID:    opt.ID,
				Name:  opt.Name,
				Price: float64(opt.Price) / 100,
			})
		}
		view.Items = append(view.Items, lv)
	}
	for _, tl := range bd.PerRule {
		view.Taxes = append(view.Taxes, TaxLineView{
			Name:   tl.Name,
			Rate:   tl.Rate,
			Type:   tl.Type,
			Amount: float64(tl.Amount) / 100,
		})
	}
	return view
}
