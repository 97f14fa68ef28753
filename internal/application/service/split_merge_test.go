package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/pkg/apperror"
)

func ticketWithLines(quantities ...int) *entity.Ticket {
	ticket := entity.NewTicket()
	for i, qty := range quantities {
		line := entity.LineItem{
			ID:        uuid.New().String(),
			ProductID: uuid.New(),
			Name:      "Item " + string(rune('A'+i)),
			UnitPrice: int64(1000 * (i + 1)),
			Quantity:  qty,
		}
		line.Recompute()
		ticket.Items = append(ticket.Items, line)
	}
	return ticket
}

func TestSplitConservesUnits(t *testing.T) {
	engine := NewSplitMergeEngine()
	ticket := ticketWithLines(3, 2)
	before := ticket.TotalUnits()

	extracted, err := engine.Split(ticket, map[string]int{
		ticket.Items[0].ID: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ticket.TotalUnits() + extracted.TotalUnits(); got != before {
		t.Errorf("units not conserved: %d, want %d", got, before)
	}
	if ticket.Items[0].Quantity != 1 {
		t.Errorf("source Quantity = %d, want 1", ticket.Items[0].Quantity)
	}
	if extracted.Items[0].Quantity != 2 {
		t.Errorf("extracted Quantity = %d, want 2", extracted.Items[0].Quantity)
	}
	if extracted.Items[0].Subtotal != 2000 {
		t.Errorf("extracted Subtotal = %d, want 2000", extracted.Items[0].Subtotal)
	}
}

func TestSplitWholeLineRemovesFromSource(t *testing.T) {
	engine := NewSplitMergeEngine()
	ticket := ticketWithLines(2, 3)
	lineID := ticket.Items[0].ID

	extracted, err := engine.Split(ticket, map[string]int{lineID: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ticket.FindLine(lineID) != -1 {
		t.Error("fully moved line still present in source")
	}
	if extracted.FindLine(lineID) != 0 {
		t.Error("moved line missing from extracted ticket")
	}
}

func TestSplitRejections(t *testing.T) {
	engine := NewSplitMergeEngine()

	t.Run("nothingSelected", func(t *testing.T) {
		ticket := ticketWithLines(2)
		_, err := engine.Split(ticket, map[string]int{})
		if !errors.Is(err, apperror.ErrNothingSelected) {
			t.Errorf("err = %v, want ErrNothingSelected", err)
		}
	})

	t.Run("zeroQuantitiesIgnored", func(t *testing.T) {
		ticket := ticketWithLines(2)
		_, err := engine.Split(ticket, map[string]int{ticket.Items[0].ID: 0})
		if !errors.Is(err, apperror.ErrNothingSelected) {
			t.Errorf("err = %v, want ErrNothingSelected", err)
		}
	})

	t.Run("entireTicket", func(t *testing.T) {
		ticket := ticketWithLines(2, 1)
		_, err := engine.Split(ticket, map[string]int{
			ticket.Items[0].ID: 2,
			ticket.Items[1].ID: 1,
		})
		if !errors.Is(err, apperror.ErrCannotMoveEntireTicket) {
			t.Errorf("err = %v, want ErrCannotMoveEntireTicket", err)
		}
		if ticket.TotalUnits() != 3 {
			t.Errorf("rejected split mutated the source: %d units", ticket.TotalUnits())
		}
	})

	t.Run("overMove", func(t *testing.T) {
		ticket := ticketWithLines(2, 1)
		_, err := engine.Split(ticket, map[string]int{ticket.Items[0].ID: 5})
		if err == nil {
			t.Fatal("expected error moving more units than the line holds")
		}
	})

	t.Run("unknownLine", func(t *testing.T) {
		ticket := ticketWithLines(2, 1)
		_, err := engine.Split(ticket, map[string]int{"missing": 1})
		if err == nil {
			t.Fatal("expected error for unknown line")
		}
	})
}

func TestMergeAggregatesByKey(t *testing.T) {
	engine := NewSplitMergeEngine()

	shared := entity.LineItem{
		ID:        "shared-key",
		ProductID: uuid.New(),
		Name:      "Coffee",
		UnitPrice: 2500,
		Quantity:  2,
	}
	shared.Recompute()

	active := entity.NewTicket()
	active.Items = append(active.Items, shared)

	srcLine := shared
	srcLine.Quantity = 3
	srcLine.Recompute()
	other := entity.LineItem{
		ID:        "other-key",
		ProductID: uuid.New(),
		Name:      "Tea",
		UnitPrice: 2000,
		Quantity:  1,
	}
	other.Recompute()
	source := entity.NewTicket()
	source.Items = append(source.Items, srcLine, other)

	engine.Merge(active, []*entity.Ticket{source})

	if len(active.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(active.Items))
	}
	if active.Items[0].Quantity != 5 {
		t.Errorf("merged Quantity = %d, want 5", active.Items[0].Quantity)
	}
	if active.Items[0].Subtotal != 12500 {
		t.Errorf("merged Subtotal = %d, want 12500", active.Items[0].Subtotal)
	}
	if active.Items[1].Name != "Tea" {
		t.Errorf("appended line = %q, want Tea", active.Items[1].Name)
	}
}

func TestMergeAdoptsCustomer(t *testing.T) {
	engine := NewSplitMergeEngine()
	active := ticketWithLines(1)

	customerID := uuid.New()
	source := ticketWithLines(1)
	source.CustomerID = &customerID

	engine.Merge(active, []*entity.Ticket{source})

	if active.CustomerID == nil || *active.CustomerID != customerID {
		t.Error("merge did not adopt the source customer")
	}
}

func TestSplitThenMergeRoundTrip(t *testing.T) {
	engine := NewSplitMergeEngine()
	ticket := ticketWithLines(4, 2)
	before := ticket.TotalUnits()
	subtotalBefore := ticket.Subtotal()

	extracted, err := engine.Split(ticket, map[string]int{ticket.Items[0].ID: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	engine.Merge(ticket, []*entity.Ticket{extracted})

	if ticket.TotalUnits() != before {
		t.Errorf("TotalUnits = %d, want %d", ticket.TotalUnits(), before)
	}
	if ticket.Subtotal() != subtotalBefore {
		t.Errorf("Subtotal = %d, want %d", ticket.Subtotal(), subtotalBefore)
	}
}
