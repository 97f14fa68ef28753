package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/repository"
	"github.com/smartinr/ventapos-api/pkg/apperror"
)

// PosService orchestrates the point-of-sale flow: the active ticket of
// each cashier, suspending and loading tickets, splitting and merging,
// and checkout. The engines hold the rules; this service wires them to
// the registry and the repositories.
type PosService struct {
	registry  *TicketRegistry
	products  repository.ProductRepository
	taxes     repository.TaxRuleRepository
	methods   repository.PaymentMethodRepository
	customers repository.CustomerRepository
	suspended repository.SuspendedTicketRepository
	sessions  repository.CashSessionRepository
	sales     repository.SaleRepository

	resolver *ModifierResolver
	engine   *TicketEngine
	splitter *SplitMergeEngine
	calc     *TaxCalculator
	checkout *CheckoutCalculator

	stockEnforced bool
}

// NewPosService creates a new POS service
func NewPosService(
	registry *TicketRegistry,
	products repository.ProductRepository,
	taxes repository.TaxRuleRepository,
	methods repository.PaymentMethodRepository,
	customers repository.CustomerRepository,
	suspended repository.SuspendedTicketRepository,
	sessions repository.CashSessionRepository,
	sales repository.SaleRepository,
	stockEnforced bool,
) *PosService {
	return &PosService{
		registry:      registry,
		products:      products,
		taxes:         taxes,
		methods:       methods,
		customers:     customers,
		suspended:     suspended,
		sessions:      sessions,
		sales:         sales,
		resolver:      NewModifierResolver(),
		engine:        NewTicketEngine(stockEnforced),
		splitter:      NewSplitMergeEngine(),
		calc:          NewTaxCalculator(),
		checkout:      NewCheckoutCalculator(NewCashSessionManager()),
		stockEnforced: stockEnforced,
	}
}

func (s *PosService) view(ctx context.Context, userID uuid.UUID, t *entity.Ticket) (*TicketView, error) {
	rules, err := s.taxes.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildTicketView(t, s.calc.Compute(t.Subtotal(), rules)), nil
}

// ActiveTicket returns the cashier's active ticket with current totals
func (s *PosService) ActiveTicket(ctx context.Context, userID uuid.UUID) (*TicketView, error) {
	var view *TicketView
	err := s.registry.WithTicket(userID, func(t *entity.Ticket) error {
		var err error
		view, err = s.view(ctx, userID, t)
		return err
	})
	return view, err
}

// AddItem adds one unit of a product to the active ticket. Options maps
// modifier group ID to the chosen option IDs for that group.
func (s *PosService) AddItem(ctx context.Context, userID, productID uuid.UUID, options map[uuid.UUID][]uuid.UUID) (*TicketView, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	sel, err := s.resolver.ResolveSelection(product, options)
	if err != nil {
		return nil, err
	}

	var view *TicketView
	err = s.registry.WithTicket(userID, func(t *entity.Ticket) error {
		if err := s.engine.AddItem(t, product, sel); err != nil {
			return err
		}
		var err error
		view, err = s.view(ctx, userID, t)
		return err
	})
	return view, err
}

// AddItemByBarcode looks a product up by barcode and adds it without
// modifiers. Products with an obligatory group cannot be added this way.
func (s *PosService) AddItemByBarcode(ctx context.Context, userID uuid.UUID, barcode string) (*TicketView, error) {
	product, err := s.products.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return s.AddItem(ctx, userID, product.ID, nil)
}

// UpdateQuantity applies a signed delta to a line's quantity
func (s *PosService) UpdateQuantity(ctx context.Context, userID uuid.UUID, lineID string, delta int) (*TicketView, error) {
	var view *TicketView
	err := s.registry.WithTicket(userID, func(t *entity.Ticket) error {
		if err := s.engine.UpdateQuantity(t, lineID, delta); err != nil {
			return err
		}
		var err error
		view, err = s.view(ctx, userID, t)
		return err
	})
	return view, err
}

// RemoveItem removes a whole line from the active ticket
func (s *PosService) RemoveItem(ctx context.Context, userID uuid.UUID, lineID string) (*TicketView, error) {
	var view *TicketView
	err := s.registry.WithTicket(userID, func(t *entity.Ticket) error {
		if err := s.engine.RemoveItem(t, lineID); err != nil {
			return err
		}
		var err error
		view, err = s.view(ctx, userID, t)
		return err
	})
	return view, err
}

// ClearTicket empties the active ticket
func (s *PosService) ClearTicket(ctx context.Context, userID uuid.UUID) (*TicketView, error) {
	var view *TicketView
	err := s.registry.WithTicket(userID, func(t *entity.Ticket) error {
		s.engine.Clear(t)
		var err error
		view, err = s.view(ctx, userID, t)
		return err
	})
	return view, err
}

// SetCustomer attaches a customer and comment to the active ticket. A
// nil customer ID detaches the current customer.
func (s *PosService) SetCustomer(ctx context.Context, userID uuid.UUID, customerID *uuid.UUID, comment string) (*TicketView, error) {
	if customerID != nil {
		customer, err := s.customers.GetByID(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.UserID != userID {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	var view *TicketView
	err := s.registry.WithTicket(userID, func(t *entity.Ticket) error {
		t.CustomerID = customerID
		t.Comment = comment
		var err error
		view, err = s.view(ctx, userID, t)
		return err
	})
	return view, err
}

func defaultTicketName() string {
	return fmt.Sprintf("Ticket %s", time.Now().Format("15:04:05"))
}

// checkName enforces name uniqueness among the cashier's suspended
// tickets. selfID exempts the ticket being re-saved under its own name.
func (s *PosService) checkName(ctx context.Context, userID uuid.UUID, name string, selfID *uuid.UUID) error {
	existing, err := s.suspended.GetByName(ctx, userID, name)
	if err != nil {
		return err
	}
	if existing != nil && (selfID == nil || existing.ID != *selfID) {
		return apperror.NewConflictError("A suspended ticket with that name already exists")
	}
	return nil
}

// Suspend freezes the active ticket under a name and clears the cart.
// A ticket previously loaded from a suspended ticket is re-saved under
// the same identity.
func (s *PosService) Suspend(ctx context.Context, userID uuid.UUID, name string) (*entity.SuspendedTicket, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultTicketName()
	}

	var saved *entity.SuspendedTicket
	err := s.registry.WithTicket(userID, func(t *entity.Ticket) error {
		if t.IsEmpty() {
			return apperror.ErrEmptyTicket
		}
		if err := s.checkName(ctx, userID, name, t.SuspendedID); err != nil {
			return err
		}

		frozen := t.Clone()
		st := &entity.SuspendedTicket{
			UserID:     userID,
			Name:       name,
			Items:      entity.LineItems(frozen.Items),
			Subtotal:   t.Subtotal(),
			CustomerID: frozen.CustomerID,
			Comment:    frozen.Comment,
		}
		if t.SuspendedID != nil {
			st.ID = *t.SuspendedID
		}
		if err := s.suspended.Save(ctx, st); err != nil {
			return err
		}

		s.engine.Clear(t)
		saved = st
		return nil
	})
	return saved, err
}

// LoadSuspended restores a suspended ticket into the active cart. The
// stored record is consumed; suspending again re-creates it under the
// same identity. The active cart must be empty.
func (s *PosService) LoadSuspended(ctx context.Context, userID, id uuid.UUID) (*TicketView, error) {
	st, err := s.suspended.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil || st.UserID != userID {
		return nil, apperror.NewNotFoundError("Suspended ticket")
	}

	var view *TicketView
	err = s.registry.WithTicket(userID, func(t *entity.Ticket) error {
		if !t.IsEmpty() {
			return apperror.NewConflictError("Active ticket is not empty")
		}
		*t = *st.ToTicket()
		loadedID := st.ID
		t.SuspendedID = &loadedID

		if err := s.suspended.Delete(ctx, st.ID); err != nil {
			return err
		}
		var err error
		view, err = s.view(ctx, userID, t)
		return err
	})
	return view, err
}

// ListSuspended returns the cashier's suspended tickets
func (s *PosService) ListSuspended(ctx context.Context, userID uuid.UUID) ([]entity.SuspendedTicket, error) {
	return s.suspended.List(ctx, userID)
}

// DiscardSuspended deletes a suspended ticket without loading it
func (s *PosService) DiscardSuspended(ctx context.Context, userID, id uuid.UUID) error {
	st, err := s.suspended.Get(ctx, id)
	if err != nil {
		return err
	}
	if st == nil || st.UserID != userID {
		return apperror.NewNotFoundError("Suspended ticket")
	}
	return s.suspended.Delete(ctx, id)
}

// Split moves selected quantities of the active ticket into a new
// suspended ticket. The selection maps line ID to units to move; the
// remainder stays in the cart.
func (s *PosService) Split(ctx context.Context, userID uuid.UUID, selection map[string]int, name string) (*entity.SuspendedTicket, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultTicketName()
	}

	var saved *entity.SuspendedTicket
	err := s.registry.WithTicket(userID, func(t *entity.Ticket) error {
		if err := s.checkName(ctx, userID, name, nil); err != nil {
			return err
		}

		extracted, err := s.splitter.Split(t, selection)
		if err != nil {
			return err
		}

		st := &entity.SuspendedTicket{
			UserID:   userID,
			Name:     name,
			Items:    entity.LineItems(extracted.Items),
			Subtotal: extracted.Subtotal(),
		}
		if err := s.suspended.Save(ctx, st); err != nil {
			return err
		}
		saved = st
		return nil
	})
	return saved, err
}

// Merge folds one or more suspended tickets into the active cart and
// deletes the consumed records. IDs no longer present are skipped.
func (s *PosService) Merge(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (*TicketView, error) {
	var consumed []*entity.SuspendedTicket
	for _, id := range ids {
		st, err := s.suspended.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if st == nil || st.UserID != userID {
			continue
		}
		consumed = append(consumed, st)
	}
	if len(consumed) == 0 {
		return nil, apperror.ErrNothingSelected
	}

	var view *TicketView
	err := s.registry.WithTicket(userID, func(t *entity.Ticket) error {
		sources := make([]*entity.Ticket, len(consumed))
		for i, st := range consumed {
			sources[i] = st.ToTicket()
		}
		s.splitter.Merge(t, sources)

		for _, st := range consumed {
			if err := s.suspended.Delete(ctx, st.ID); err != nil {
				return err
			}
		}
		var err error
		view, err = s.view(ctx, userID, t)
		return err
	})
	return view, err
}

// Checkout finalizes the active ticket against the cashier's open cash
// session, persists the sale, decrements stock when enforcement is on
// and clears the cart.
func (s *PosService) Checkout(ctx context.Context, userID, methodID uuid.UUID, tendered int64) (*entity.Sale, error) {
	method, err := s.methods.GetByID(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil || method.UserID != userID {
		return nil, apperror.ErrInvalidPaymentMethod
	}

	session, err := s.sessions.GetOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrNoOpenSession
	}

	var sale *entity.Sale
	err = s.registry.WithTicket(userID, func(t *entity.Ticket) error {
		if t.IsEmpty() {
			return apperror.ErrEmptyTicket
		}

		decrements := make(map[uuid.UUID]int)
		if s.stockEnforced {
			for i := range t.Items {
				decrements[t.Items[i].ProductID] += t.Items[i].Quantity
			}
			failed, err := s.products.AtomicDecrementBatch(ctx, decrements)
			if err != nil {
				return err
			}
			if len(failed) > 0 {
				return apperror.ErrInsufficientStock.WithDetail(t.LineNameFor(failed[0]))
			}
		}

		restock := func() {
			if s.stockEnforced {
				_ = s.products.AtomicIncrementBatch(ctx, decrements)
			}
		}

		rules, err := s.taxes.ListActive(ctx, userID)
		if err != nil {
			restock()
			return err
		}

		sale, err = s.checkout.Checkout(CheckoutInput{
			Ticket:   t,
			Totals:   s.calc.Compute(t.Subtotal(), rules),
			Method:   method,
			Tendered: tendered,
			Session:  session,
		})
		if err != nil {
			restock()
			return err
		}

		// One transactional write: the session is incremented only if
		// still open, so a drawer closed since the snapshot above was
		// taken rejects the sale instead of resurrecting the session.
		if err := s.sales.Finalize(ctx, sale); err != nil {
			restock()
			return err
		}

		s.engine.Clear(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}
