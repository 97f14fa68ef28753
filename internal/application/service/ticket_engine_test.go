package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/pkg/apperror"
)

func testProduct(name string, price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: price,
		Stock: stock,
	}
}

func TestTicketEngineAddItem(t *testing.T) {
	engine := NewTicketEngine(false)

	t.Run("sameKeyMergesIntoOneLine", func(t *testing.T) {
		ticket := entity.NewTicket()
		coffee := testProduct("Coffee", 2500, 10)

		for i := 0; i < 3; i++ {
			if err := engine.AddItem(ticket, coffee, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if len(ticket.Items) != 1 {
			t.Fatalf("len(Items) = %d, want 1", len(ticket.Items))
		}
		if ticket.Items[0].Quantity != 3 {
			t.Errorf("Quantity = %d, want 3", ticket.Items[0].Quantity)
		}
		if ticket.Items[0].Subtotal != 7500 {
			t.Errorf("Subtotal = %d, want 7500", ticket.Items[0].Subtotal)
		}
	})

	t.Run("differentOptionCombosAreDistinctLines", func(t *testing.T) {
		ticket := entity.NewTicket()
		burger := testProduct("Burger", 5000, 10)
		cheese := entity.ChosenOption{ID: uuid.New(), Name: "Cheese", Price: 200}

		plain := &ResolvedSelection{Key: entity.LineKey(burger.ID, nil)}
		withCheese := &ResolvedSelection{
			Key:        entity.LineKey(burger.ID, []uuid.UUID{cheese.ID}),
			PriceDelta: cheese.Price,
			Options:    []entity.ChosenOption{cheese},
		}

		if err := engine.AddItem(ticket, burger, plain); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := engine.AddItem(ticket, burger, withCheese); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(ticket.Items) != 2 {
			t.Fatalf("len(Items) = %d, want 2", len(ticket.Items))
		}
		if ticket.Items[0].UnitPrice != 5000 {
			t.Errorf("plain UnitPrice = %d, want 5000", ticket.Items[0].UnitPrice)
		}
		if ticket.Items[1].UnitPrice != 5200 {
			t.Errorf("cheese UnitPrice = %d, want 5200", ticket.Items[1].UnitPrice)
		}
	})

	t.Run("stockIgnoredWhenNotEnforced", func(t *testing.T) {
		ticket := entity.NewTicket()
		soldOut := testProduct("Rare", 1000, 0)

		if err := engine.AddItem(ticket, soldOut, nil); err != nil {
			t.Errorf("unexpected error with enforcement off: %v", err)
		}
	})
}

func TestTicketEngineStockEnforced(t *testing.T) {
	engine := NewTicketEngine(true)

	t.Run("outOfStockRejected", func(t *testing.T) {
		ticket := entity.NewTicket()
		soldOut := testProduct("Rare", 1000, 0)

		err := engine.AddItem(ticket, soldOut, nil)
		if !errors.Is(err, apperror.ErrInsufficientStock) {
			t.Errorf("err = %v, want ErrInsufficientStock", err)
		}
	})

	t.Run("ceilingStopsIncrement", func(t *testing.T) {
		ticket := entity.NewTicket()
		scarce := testProduct("Scarce", 1000, 2)

		if err := engine.AddItem(ticket, scarce, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := engine.AddItem(ticket, scarce, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := engine.AddItem(ticket, scarce, nil)
		if !errors.Is(err, apperror.ErrInsufficientStock) {
			t.Errorf("err = %v, want ErrInsufficientStock", err)
		}
		if ticket.Items[0].Quantity != 2 {
			t.Errorf("Quantity = %d, want 2 after rejected add", ticket.Items[0].Quantity)
		}
	})

	t.Run("deltaBeyondCeilingLeavesQuantity", func(t *testing.T) {
		ticket := entity.NewTicket()
		scarce := testProduct("Scarce", 1000, 3)
		if err := engine.AddItem(ticket, scarce, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err := engine.UpdateQuantity(ticket, ticket.Items[0].ID, 5)
		if !errors.Is(err, apperror.ErrInsufficientStock) {
			t.Errorf("err = %v, want ErrInsufficientStock", err)
		}
		if ticket.Items[0].Quantity != 1 {
			t.Errorf("Quantity = %d, want unchanged 1", ticket.Items[0].Quantity)
		}
	})
}

func TestTicketEngineUpdateQuantity(t *testing.T) {
	engine := NewTicketEngine(false)

	t.Run("positiveDelta", func(t *testing.T) {
		ticket := entity.NewTicket()
		coffee := testProduct("Coffee", 2500, 0)
		if err := engine.AddItem(ticket, coffee, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := engine.UpdateQuantity(ticket, ticket.Items[0].ID, 4); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ticket.Items[0].Quantity != 5 {
			t.Errorf("Quantity = %d, want 5", ticket.Items[0].Quantity)
		}
		if ticket.Items[0].Subtotal != 12500 {
			t.Errorf("Subtotal = %d, want 12500", ticket.Items[0].Subtotal)
		}
	})

	t.Run("zeroOrBelowRemovesLine", func(t *testing.T) {
		ticket := entity.NewTicket()
		coffee := testProduct("Coffee", 2500, 0)
		if err := engine.AddItem(ticket, coffee, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := engine.UpdateQuantity(ticket, ticket.Items[0].ID, -1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ticket.IsEmpty() {
			t.Errorf("ticket not empty after quantity hit zero")
		}
	})

	t.Run("unknownLine", func(t *testing.T) {
		ticket := entity.NewTicket()
		if err := engine.UpdateQuantity(ticket, "missing", 1); err == nil {
			t.Error("expected error for unknown line")
		}
	})
}

func TestTicketEngineRemoveAndClear(t *testing.T) {
	engine := NewTicketEngine(false)
	ticket := entity.NewTicket()
	coffee := testProduct("Coffee", 2500, 0)
	tea := testProduct("Tea", 2000, 0)

	if err := engine.AddItem(ticket, coffee, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := engine.AddItem(ticket, tea, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := engine.RemoveItem(ticket, ticket.Items[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ticket.Items) != 1 || ticket.Items[0].Name != "Tea" {
		t.Errorf("remove left wrong lines: %+v", ticket.Items)
	}

	customerID := uuid.New()
	ticket.CustomerID = &customerID
	ticket.Comment = "sin hielo"

	engine.Clear(ticket)
	if !ticket.IsEmpty() {
		t.Error("ticket not empty after clear")
	}
	if ticket.CustomerID != nil || ticket.Comment != "" {
		t.Error("clear kept customer or comment")
	}
}

func TestTicketSubtotalRederived(t *testing.T) {
	engine := NewTicketEngine(false)
	ticket := entity.NewTicket()
	coffee := testProduct("Coffee", 2500, 0)
	tea := testProduct("Tea", 2000, 0)

	for i := 0; i < 2; i++ {
		if err := engine.AddItem(ticket, coffee, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := engine.AddItem(ticket, tea, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ticket.Subtotal(); got != 7000 {
		t.Errorf("Subtotal = %d, want 7000", got)
	}

	if err := engine.UpdateQuantity(ticket, ticket.Items[1].ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ticket.Subtotal(); got != 11000 {
		t.Errorf("Subtotal = %d, want 11000 after quantity change", got)
	}
}
