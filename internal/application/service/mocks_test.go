package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/pkg/apperror"
	"github.com/smartinr/ventapos-api/pkg/pagination"
)

// Map-backed fakes for the repository interfaces. Func override fields
// let a test inject a failure for one call without writing a whole new
// implementation.

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, amount := range decrements {
		p, ok := r.products[id]
		if !ok || p.Stock < amount {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, amount := range decrements {
		r.products[id].Stock -= amount
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, amount := range increments {
		if p, ok := r.products[id]; ok {
			p.Stock += amount
		}
	}
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.categories[id], nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(ctx context.Context, userID uuid.UUID) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeModifierGroupRepo struct {
	groups map[uuid.UUID]*entity.ModifierGroup
}

func newFakeModifierGroupRepo() *fakeModifierGroupRepo {
	return &fakeModifierGroupRepo{groups: make(map[uuid.UUID]*entity.ModifierGroup)}
}

func (r *fakeModifierGroupRepo) Create(ctx context.Context, group *entity.ModifierGroup) error {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	r.groups[group.ID] = group
	return nil
}

func (r *fakeModifierGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ModifierGroup, error) {
	return r.groups[id], nil
}

func (r *fakeModifierGroupRepo) Update(ctx context.Context, group *entity.ModifierGroup) error {
	r.groups[group.ID] = group
	return nil
}

func (r *fakeModifierGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.groups, id)
	return nil
}

func (r *fakeModifierGroupRepo) List(ctx context.Context, userID uuid.UUID) ([]entity.ModifierGroup, error) {
	var out []entity.ModifierGroup
	for _, g := range r.groups {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

type fakeTaxRuleRepo struct {
	rules []entity.TaxRule
}

func (r *fakeTaxRuleRepo) Create(ctx context.Context, rule *entity.TaxRule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	r.rules = append(r.rules, *rule)
	return nil
}

func (r *fakeTaxRuleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxRule, error) {
	for i := range r.rules {
		if r.rules[i].ID == id {
			return &r.rules[i], nil
		}
	}
	return nil, nil
}

func (r *fakeTaxRuleRepo) Update(ctx context.Context, rule *entity.TaxRule) error {
	for i := range r.rules {
		if r.rules[i].ID == rule.ID {
			r.rules[i] = *rule
		}
	}
	return nil
}

func (r *fakeTaxRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.rules {
		if r.rules[i].ID == id {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeTaxRuleRepo) List(ctx context.Context, userID uuid.UUID) ([]entity.TaxRule, error) {
	var out []entity.TaxRule
	for _, rule := range r.rules {
		if rule.UserID == userID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeTaxRuleRepo) ListActive(ctx context.Context, userID uuid.UUID) ([]entity.TaxRule, error) {
	var out []entity.TaxRule
	for _, rule := range r.rules {
		if rule.UserID == userID && rule.Active {
			out = append(out, rule)
		}
	}
	return out, nil
}

type fakePaymentMethodRepo struct {
	methods map[uuid.UUID]*entity.PaymentMethod
}

func newFakePaymentMethodRepo() *fakePaymentMethodRepo {
	return &fakePaymentMethodRepo{methods: make(map[uuid.UUID]*entity.PaymentMethod)}
}

func (r *fakePaymentMethodRepo) Create(ctx context.Context, method *entity.PaymentMethod) error {
	if method.ID == uuid.Nil {
		method.ID = uuid.New()
	}
	r.methods[method.ID] = method
	return nil
}

func (r *fakePaymentMethodRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	return r.methods[id], nil
}

func (r *fakePaymentMethodRepo) Update(ctx context.Context, method *entity.PaymentMethod) error {
	r.methods[method.ID] = method
	return nil
}

func (r *fakePaymentMethodRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.methods, id)
	return nil
}

func (r *fakePaymentMethodRepo) List(ctx context.Context, userID uuid.UUID) ([]entity.PaymentMethod, error) {
	var out []entity.PaymentMethod
	for _, m := range r.methods {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakePaymentMethodRepo) ListActive(ctx context.Context, userID uuid.UUID) ([]entity.PaymentMethod, error) {
	var out []entity.PaymentMethod
	for _, m := range r.methods {
		if m.UserID == userID && m.Active {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

type fakeSuspendedRepo struct {
	tickets map[uuid.UUID]*entity.SuspendedTicket

	SaveFunc func(ctx context.Context, ticket *entity.SuspendedTicket) error
}

func newFakeSuspendedRepo() *fakeSuspendedRepo {
	return &fakeSuspendedRepo{tickets: make(map[uuid.UUID]*entity.SuspendedTicket)}
}

func (r *fakeSuspendedRepo) Save(ctx context.Context, ticket *entity.SuspendedTicket) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, ticket)
	}
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeSuspendedRepo) Get(ctx context.Context, id uuid.UUID) (*entity.SuspendedTicket, error) {
	return r.tickets[id], nil
}

func (r *fakeSuspendedRepo) GetByName(ctx context.Context, userID uuid.UUID, name string) (*entity.SuspendedTicket, error) {
	for _, st := range r.tickets {
		if st.UserID == userID && st.Name == name {
			return st, nil
		}
	}
	return nil, nil
}

func (r *fakeSuspendedRepo) List(ctx context.Context, userID uuid.UUID) ([]entity.SuspendedTicket, error) {
	var out []entity.SuspendedTicket
	for _, st := range r.tickets {
		if st.UserID == userID {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (r *fakeSuspendedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.tickets, id)
	return nil
}

type methodSalesKey struct {
	sessionID uuid.UUID
	methodID  uuid.UUID
}

type fakeCashSessionRepo struct {
	sessions    map[uuid.UUID]*entity.CashSession
	methodSales map[methodSalesKey]int64

	GetOpenByUserFunc func(ctx context.Context, userID uuid.UUID) (*entity.CashSession, error)
}

func newFakeCashSessionRepo() *fakeCashSessionRepo {
	return &fakeCashSessionRepo{
		sessions:    make(map[uuid.UUID]*entity.CashSession),
		methodSales: make(map[methodSalesKey]int64),
	}
}

func (r *fakeCashSessionRepo) Create(ctx context.Context, session *entity.CashSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeCashSessionRepo) Update(ctx context.Context, session *entity.CashSession) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeCashSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	return r.sessions[id], nil
}

func (r *fakeCashSessionRepo) GetOpen(ctx context.Context, terminal string) (*entity.CashSession, error) {
	for _, s := range r.sessions {
		if s.Terminal == terminal && s.IsOpen() {
			return s, nil
		}
	}
	return nil, nil
}

// GetOpenByUser returns a row snapshot, not the stored record, the way
// a database read does.
func (r *fakeCashSessionRepo) GetOpenByUser(ctx context.Context, userID uuid.UUID) (*entity.CashSession, error) {
	if r.GetOpenByUserFunc != nil {
		return r.GetOpenByUserFunc(ctx, userID)
	}
	for _, s := range r.sessions {
		if s.UserID == userID && s.IsOpen() {
			snap := *s
			return &snap, nil
		}
	}
	return nil, nil
}

func (r *fakeCashSessionRepo) ListOpen(ctx context.Context, userID uuid.UUID) ([]entity.CashSession, error) {
	var out []entity.CashSession
	for _, s := range r.sessions {
		if s.UserID == userID && s.IsOpen() {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeCashSessionRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.CashSession, int64, error) {
	var out []entity.CashSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

type fakeSaleRepo struct {
	sales    []*entity.Sale
	sessions *fakeCashSessionRepo
}

// Finalize mirrors the conditional, all-or-nothing checkout write: the
// stored session must still be open or nothing is recorded.
func (r *fakeSaleRepo) Finalize(ctx context.Context, sale *entity.Sale) error {
	session, ok := r.sessions.sessions[sale.SessionID]
	if !ok || !session.IsOpen() {
		return apperror.ErrSessionClosed
	}
	session.SalesCount++
	session.SalesTotal += sale.Total
	r.sessions.methodSales[methodSalesKey{sale.SessionID, sale.PaymentMethodID}] += sale.Total

	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	r.sales = append(r.sales, sale)
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		if s.SessionID == sessionID {
			out = append(out, *s)
		}
	}
	return out, nil
}
