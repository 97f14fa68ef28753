package service

import (
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/pkg/apperror"
	"github.com/smartinr/ventapos-api/pkg/utils"
)

// CheckoutInput carries everything checkout needs to finalize a ticket:
// the ticket itself, its tax breakdown, the payment method, the amount
// tendered and the open cash session taking the sale.
type CheckoutInput struct {
	Ticket   *entity.Ticket
	Totals   TaxBreakdown
	Method   *entity.PaymentMethod
	Tendered int64
	Session  *entity.CashSession
}

// CheckoutCalculator validates payment against the ticket total and
// produces the finalized sale. On success the sale is recorded onto the
// cash session before the sale is returned.
type CheckoutCalculator struct {
	sessions *CashSessionManager
}

// NewCheckoutCalculator creates a new checkout calculator
func NewCheckoutCalculator(sessions *CashSessionManager) *CheckoutCalculator {
	return &CheckoutCalculator{sessions: sessions}
}

// Checkout finalizes the ticket. Cash payments may tender any amount at
// or above the total and get change back; non-cash payments must tender
// the exact total. The ticket must be non-empty, the payment method
// active and the session open. The returned sale freezes the line
// items, totals and tax breakdown as computed here.
func (c *CheckoutCalculator) Checkout(in CheckoutInput) (*entity.Sale, error) {
	if in.Ticket == nil || in.Ticket.IsEmpty() {
		return nil, apperror.ErrEmptyTicket
	}
	if in.Method == nil || !in.Method.Active {
		return nil, apperror.ErrInvalidPaymentMethod
	}
	if in.Session == nil || !in.Session.IsOpen() {
		return nil, apperror.ErrNoOpenSession
	}

	total := in.Totals.GrandTotal
	var change int64
	if in.Method.IsCash {
		if in.Tendered < total {
			return nil, apperror.ErrInsufficientTender
		}
		change = in.Tendered - total
	} else {
		if in.Tendered != total {
			return nil, apperror.ErrInsufficientTender.WithDetail("non-cash payments must tender the exact total")
		}
	}

	if err := c.sessions.RecordSale(in.Session, total); err != nil {
		return nil, err
	}

	frozen := in.Ticket.Clone()
	sale := &entity.Sale{
		Number:          utils.GenerateSaleNumber(),
		UserID:          in.Session.UserID,
		SessionID:       in.Session.ID,
		CustomerID:      frozen.CustomerID,
		Items:           entity.LineItems(frozen.Items),
		Subtotal:        in.Totals.Subtotal,
		TaxTotal:        in.Totals.TaxTotal,
		Total:           total,
		PaymentMethodID: in.Method.ID,
		PaymentMethod:   in.Method.Name,
		Tendered:        in.Tendered,
		Change:          change,
		Comment:         frozen.Comment,
	}
	for _, line := range in.Totals.PerRule {
		sale.Taxes = append(sale.Taxes, entity.SaleTax{
			Name:   line.Name,
			Rate:   line.Rate,
			Type:   line.Type,
			Amount: line.Amount,
		})
	}

	return sale, nil
}
