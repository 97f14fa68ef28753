package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
	"github.com/smartinr/ventapos-api/pkg/apperror"
)

type posFixture struct {
	svc       *PosService
	products  *fakeProductRepo
	taxes     *fakeTaxRuleRepo
	methods   *fakePaymentMethodRepo
	customers *fakeCustomerRepo
	suspended *fakeSuspendedRepo
	sessions  *fakeCashSessionRepo
	sales     *fakeSaleRepo
	userID    uuid.UUID
}

func newPosFixture(stockEnforced bool) *posFixture {
	sessions := newFakeCashSessionRepo()
	f := &posFixture{
		products:  newFakeProductRepo(),
		taxes:     &fakeTaxRuleRepo{},
		methods:   newFakePaymentMethodRepo(),
		customers: newFakeCustomerRepo(),
		suspended: newFakeSuspendedRepo(),
		sessions:  sessions,
		sales:     &fakeSaleRepo{sessions: sessions},
		userID:    uuid.New(),
	}
	f.svc = NewPosService(
		NewTicketRegistry(),
		f.products, f.taxes, f.methods, f.customers,
		f.suspended, f.sessions, f.sales,
		stockEnforced,
	)
	return f
}

func (f *posFixture) seedProduct(name string, price int64, stock int) *entity.Product {
	p := testProduct(name, price, stock)
	p.UserID = f.userID
	f.products.products[p.ID] = p
	return p
}

func (f *posFixture) seedCashMethod() *entity.PaymentMethod {
	m := cashMethod(true)
	m.UserID = f.userID
	f.methods.methods[m.ID] = m
	return m
}

func (f *posFixture) openSession() *entity.CashSession {
	s := &entity.CashSession{
		ID:           uuid.New(),
		Number:       "CAJA-20260829-0001",
		UserID:       f.userID,
		Terminal:     "caja-1",
		Status:       enum.SessionStatusOpen,
		OpeningFloat: 5000,
		OpenedAt:     time.Now(),
	}
	f.sessions.sessions[s.ID] = s
	return s
}

func TestPosServiceAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("addAndTotals", func(t *testing.T) {
		f := newPosFixture(false)
		f.taxes.rules = append(f.taxes.rules, entity.TaxRule{
			ID: uuid.New(), UserID: f.userID, Name: "IVA", Rate: 10,
			Type: enum.TaxTypeAdded, Active: true,
		})
		coffee := f.seedProduct("Coffee", 1000, 0)

		var view *TicketView
		var err error
		for i := 0; i < 2; i++ {
			view, err = f.svc.AddItem(ctx, f.userID, coffee.ID, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
			t.Fatalf("items = %+v, want one line of 2", view.Items)
		}
		if view.Subtotal != 20.00 {
			t.Errorf("Subtotal = %v, want 20.00", view.Subtotal)
		}
		if view.TaxTotal != 2.00 || view.Total != 22.00 {
			t.Errorf("totals = (%v, %v), want (2.00, 22.00)", view.TaxTotal, view.Total)
		}
	})

	t.Run("unknownProduct", func(t *testing.T) {
		f := newPosFixture(false)
		_, err := f.svc.AddItem(ctx, f.userID, uuid.New(), nil)
		if apperror.GetAppError(err).Code != http.StatusNotFound {
			t.Errorf("err = %v, want not found", err)
		}
	})

	t.Run("byBarcode", func(t *testing.T) {
		f := newPosFixture(false)
		tea := f.seedProduct("Tea", 800, 0)
		tea.Barcode = "7501234567890"

		view, err := f.svc.AddItemByBarcode(ctx, f.userID, "7501234567890")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(view.Items) != 1 || view.Items[0].Name != "Tea" {
			t.Errorf("items = %+v, want the Tea line", view.Items)
		}

		_, err = f.svc.AddItemByBarcode(ctx, f.userID, "0000000000000")
		if apperror.GetAppError(err).Code != http.StatusNotFound {
			t.Errorf("err = %v, want not found", err)
		}
	})
}

func TestPosServiceSuspendLoadRoundtrip(t *testing.T) {
	ctx := context.Background()
	f := newPosFixture(false)
	coffee := f.seedProduct("Coffee", 1000, 0)

	if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := f.svc.Suspend(ctx, f.userID, "Mesa 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Name != "Mesa 1" || len(saved.Items) != 1 {
		t.Errorf("saved = %+v, want one line under Mesa 1", saved)
	}

	view, err := f.svc.ActiveTicket(ctx, f.userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Items) != 0 {
		t.Error("suspend did not clear the active ticket")
	}

	view, err = f.svc.LoadSuspended(ctx, f.userID, saved.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Name != "Coffee" {
		t.Errorf("items = %+v, want the Coffee line back", view.Items)
	}

	// The record is consumed on load
	if list, _ := f.svc.ListSuspended(ctx, f.userID); len(list) != 0 {
		t.Errorf("suspended list has %d entries, want 0", len(list))
	}

	// Suspending again re-saves under the original identity
	again, err := f.svc.Suspend(ctx, f.userID, "Mesa 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID != saved.ID {
		t.Errorf("re-saved ID = %s, want original %s", again.ID, saved.ID)
	}
}

func TestPosServiceSuspendRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("emptyTicket", func(t *testing.T) {
		f := newPosFixture(false)
		_, err := f.svc.Suspend(ctx, f.userID, "Mesa 1")
		if !errors.Is(err, apperror.ErrEmptyTicket) {
			t.Errorf("err = %v, want ErrEmptyTicket", err)
		}
	})

	t.Run("duplicateName", func(t *testing.T) {
		f := newPosFixture(false)
		coffee := f.seedProduct("Coffee", 1000, 0)

		if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := f.svc.Suspend(ctx, f.userID, "Mesa 1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := f.svc.Suspend(ctx, f.userID, "Mesa 1")
		if apperror.GetAppError(err).Code != http.StatusConflict {
			t.Errorf("err = %v, want conflict", err)
		}
	})

	t.Run("saveFailureKeepsCart", func(t *testing.T) {
		f := newPosFixture(false)
		coffee := f.seedProduct("Coffee", 1000, 0)
		if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f.suspended.SaveFunc = func(ctx context.Context, ticket *entity.SuspendedTicket) error {
			return errors.New("store unavailable")
		}
		if _, err := f.svc.Suspend(ctx, f.userID, "Mesa 1"); err == nil {
			t.Fatal("expected error, got nil")
		}

		view, err := f.svc.ActiveTicket(ctx, f.userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(view.Items) != 1 {
			t.Error("cart was cleared although the suspend failed")
		}
	})
}

func TestPosServiceLoadRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("cartNotEmpty", func(t *testing.T) {
		f := newPosFixture(false)
		coffee := f.seedProduct("Coffee", 1000, 0)

		if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		saved, err := f.svc.Suspend(ctx, f.userID, "Mesa 1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = f.svc.LoadSuspended(ctx, f.userID, saved.ID)
		if apperror.GetAppError(err).Code != http.StatusConflict {
			t.Errorf("err = %v, want conflict", err)
		}
		// The record survives the rejected load
		if st, _ := f.suspended.Get(ctx, saved.ID); st == nil {
			t.Error("rejected load consumed the suspended ticket")
		}
	})

	t.Run("foreignTicket", func(t *testing.T) {
		f := newPosFixture(false)
		other := &entity.SuspendedTicket{
			ID: uuid.New(), UserID: uuid.New(), Name: "Mesa 9",
			Items: entity.LineItems{},
		}
		f.suspended.tickets[other.ID] = other

		_, err := f.svc.LoadSuspended(ctx, f.userID, other.ID)
		if apperror.GetAppError(err).Code != http.StatusNotFound {
			t.Errorf("err = %v, want not found", err)
		}
	})
}

func TestPosServiceSplit(t *testing.T) {
	ctx := context.Background()
	f := newPosFixture(false)
	coffee := f.seedProduct("Coffee", 1000, 0)

	var view *TicketView
	var err error
	for i := 0; i < 3; i++ {
		view, err = f.svc.AddItem(ctx, f.userID, coffee.ID, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	saved, err := f.svc.Split(ctx, f.userID, map[string]int{view.Items[0].ID: 2}, "Mesa 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saved.Items) != 1 || saved.Items[0].Quantity != 2 {
		t.Errorf("split items = %+v, want 2 units of Coffee", saved.Items)
	}
	if saved.Subtotal != 2000 {
		t.Errorf("split Subtotal = %d, want 2000", saved.Subtotal)
	}

	view, err = f.svc.ActiveTicket(ctx, f.userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Units != 1 {
		t.Errorf("remaining units = %d, want 1", view.Units)
	}
	if st, _ := f.suspended.Get(ctx, saved.ID); st == nil {
		t.Error("split result was not persisted")
	}
}

func TestPosServiceMerge(t *testing.T) {
	ctx := context.Background()
	f := newPosFixture(false)
	coffee := f.seedProduct("Coffee", 1000, 0)

	suspendOne := func(name string) *entity.SuspendedTicket {
		t.Helper()
		if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		saved, err := f.svc.Suspend(ctx, f.userID, name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return saved
	}

	first := suspendOne("Mesa 1")
	second := suspendOne("Mesa 2")

	view, err := f.svc.Merge(ctx, f.userID, []uuid.UUID{first.ID, second.ID, uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Units != 2 {
		t.Errorf("merged units = %d, want 2", view.Units)
	}
	if len(view.Items) != 1 {
		t.Errorf("merged into %d lines, want 1 aggregated Coffee line", len(view.Items))
	}

	// Consumed records are gone
	if list, _ := f.svc.ListSuspended(ctx, f.userID); len(list) != 0 {
		t.Errorf("suspended list has %d entries, want 0", len(list))
	}

	_, err = f.svc.Merge(ctx, f.userID, []uuid.UUID{uuid.New()})
	if !errors.Is(err, apperror.ErrNothingSelected) {
		t.Errorf("err = %v, want ErrNothingSelected", err)
	}
}

func TestPosServiceCheckout(t *testing.T) {
	ctx := context.Background()
	f := newPosFixture(true)
	coffee := f.seedProduct("Coffee", 1000, 5)
	method := f.seedCashMethod()
	session := f.openSession()

	for i := 0; i < 2; i++ {
		if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	sale, err := f.svc.Checkout(ctx, f.userID, method.ID, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sale.Total != 2000 || sale.Change != 3000 {
		t.Errorf("sale = (total %d, change %d), want (2000, 3000)", sale.Total, sale.Change)
	}
	if len(f.sales.sales) != 1 {
		t.Fatalf("persisted %d sales, want 1", len(f.sales.sales))
	}
	if session.SalesCount != 1 || session.SalesTotal != 2000 {
		t.Errorf("session counters = (%d, %d), want (1, 2000)", session.SalesCount, session.SalesTotal)
	}
	key := methodSalesKey{session.ID, method.ID}
	if f.sessions.methodSales[key] != 2000 {
		t.Errorf("method breakdown = %d, want 2000", f.sessions.methodSales[key])
	}
	if coffee.Stock != 3 {
		t.Errorf("Stock = %d, want 3 after selling 2", coffee.Stock)
	}

	view, err := f.svc.ActiveTicket(ctx, f.userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Items) != 0 {
		t.Error("checkout did not clear the active ticket")
	}
}

func TestPosServiceCheckoutRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("noOpenSession", func(t *testing.T) {
		f := newPosFixture(false)
		coffee := f.seedProduct("Coffee", 1000, 0)
		method := f.seedCashMethod()
		if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := f.svc.Checkout(ctx, f.userID, method.ID, 5000)
		if !errors.Is(err, apperror.ErrNoOpenSession) {
			t.Errorf("err = %v, want ErrNoOpenSession", err)
		}
	})

	t.Run("foreignMethod", func(t *testing.T) {
		f := newPosFixture(false)
		f.openSession()
		foreign := cashMethod(true)
		foreign.UserID = uuid.New()
		f.methods.methods[foreign.ID] = foreign

		_, err := f.svc.Checkout(ctx, f.userID, foreign.ID, 5000)
		if !errors.Is(err, apperror.ErrInvalidPaymentMethod) {
			t.Errorf("err = %v, want ErrInvalidPaymentMethod", err)
		}
	})

	t.Run("closedBetweenSnapshotAndPersist", func(t *testing.T) {
		// The drawer closes right after checkout reads the open
		// session. The close figures must survive and the sale must be
		// rejected rather than re-opening the session.
		f := newPosFixture(true)
		coffee := f.seedProduct("Coffee", 1000, 5)
		method := f.seedCashMethod()
		session := f.openSession()

		for i := 0; i < 2; i++ {
			if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		f.sessions.GetOpenByUserFunc = func(ctx context.Context, userID uuid.UUID) (*entity.CashSession, error) {
			snap := *session
			now := time.Now()
			counted := int64(5000)
			variance := counted - session.Expected()
			session.Status = enum.SessionStatusClosed
			session.CountedCash = &counted
			session.Variance = &variance
			session.ClosedAt = &now
			return &snap, nil
		}

		_, err := f.svc.Checkout(ctx, f.userID, method.ID, 5000)
		if !errors.Is(err, apperror.ErrSessionClosed) {
			t.Fatalf("err = %v, want ErrSessionClosed", err)
		}

		stored := f.sessions.sessions[session.ID]
		if stored.IsOpen() {
			t.Error("rejected checkout re-opened the closed session")
		}
		if stored.CountedCash == nil || stored.Variance == nil {
			t.Error("rejected checkout wiped the close figures")
		}
		if stored.SalesCount != 0 || stored.SalesTotal != 0 {
			t.Errorf("session counters = (%d, %d), want untouched (0, 0)", stored.SalesCount, stored.SalesTotal)
		}
		if len(f.sales.sales) != 0 {
			t.Error("rejected checkout persisted a sale")
		}
		if coffee.Stock != 5 {
			t.Errorf("Stock = %d, want restored 5", coffee.Stock)
		}

		view, verr := f.svc.ActiveTicket(ctx, f.userID)
		if verr != nil {
			t.Fatalf("unexpected error: %v", verr)
		}
		if view.Units != 2 {
			t.Error("rejected checkout cleared the active ticket")
		}
	})

	t.Run("stockRaceRestoresNothing", func(t *testing.T) {
		// Stock dropped between add and checkout, as if another
		// terminal sold the last units.
		f := newPosFixture(true)
		coffee := f.seedProduct("Coffee", 1000, 2)
		method := f.seedCashMethod()
		f.openSession()

		for i := 0; i < 2; i++ {
			if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		coffee.Stock = 1

		_, err := f.svc.Checkout(ctx, f.userID, method.ID, 5000)
		if !errors.Is(err, apperror.ErrInsufficientStock) {
			t.Fatalf("err = %v, want ErrInsufficientStock", err)
		}
		if !strings.Contains(err.Error(), "Coffee") {
			t.Errorf("err = %q, want the line name in the detail", err)
		}
		if coffee.Stock != 1 {
			t.Errorf("Stock = %d, want untouched 1", coffee.Stock)
		}
		if len(f.sales.sales) != 0 {
			t.Error("failed checkout persisted a sale")
		}

		view, verr := f.svc.ActiveTicket(ctx, f.userID)
		if verr != nil {
			t.Fatalf("unexpected error: %v", verr)
		}
		if view.Units != 2 {
			t.Error("failed checkout mutated the active ticket")
		}
	})

	t.Run("insufficientTenderRestocks", func(t *testing.T) {
		f := newPosFixture(true)
		coffee := f.seedProduct("Coffee", 1000, 5)
		method := f.seedCashMethod()
		f.openSession()

		for i := 0; i < 2; i++ {
			if _, err := f.svc.AddItem(ctx, f.userID, coffee.ID, nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		_, err := f.svc.Checkout(ctx, f.userID, method.ID, 1999)
		if !errors.Is(err, apperror.ErrInsufficientTender) {
			t.Fatalf("err = %v, want ErrInsufficientTender", err)
		}
		if coffee.Stock != 5 {
			t.Errorf("Stock = %d, want restored 5", coffee.Stock)
		}
		if len(f.sales.sales) != 0 {
			t.Error("failed checkout persisted a sale")
		}
	})
}

func TestPosServiceSetCustomer(t *testing.T) {
	ctx := context.Background()
	f := newPosFixture(false)
	customer := &entity.Customer{ID: uuid.New(), UserID: f.userID, Name: "Ana"}
	f.customers.customers[customer.ID] = customer

	view, err := f.svc.SetCustomer(ctx, f.userID, &customer.ID, "sin cebolla")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CustomerID == nil || *view.CustomerID != customer.ID {
		t.Errorf("CustomerID = %v, want %s", view.CustomerID, customer.ID)
	}
	if view.Comment != "sin cebolla" {
		t.Errorf("Comment = %q, want %q", view.Comment, "sin cebolla")
	}

	t.Run("foreignCustomer", func(t *testing.T) {
		foreign := &entity.Customer{ID: uuid.New(), UserID: uuid.New(), Name: "Luis"}
		f.customers.customers[foreign.ID] = foreign

		_, err := f.svc.SetCustomer(ctx, f.userID, &foreign.ID, "")
		if apperror.GetAppError(err).Code != http.StatusNotFound {
			t.Errorf("err = %v, want not found", err)
		}
	})

	t.Run("detach", func(t *testing.T) {
		view, err := f.svc.SetCustomer(ctx, f.userID, nil, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.CustomerID != nil {
			t.Errorf("CustomerID = %v, want nil", view.CustomerID)
		}
	})
}
