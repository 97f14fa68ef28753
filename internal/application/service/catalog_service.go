package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
	"github.com/smartinr/ventapos-api/internal/domain/repository"
	"github.com/smartinr/ventapos-api/pkg/apperror"
	"github.com/smartinr/ventapos-api/pkg/pagination"
)

// toCents converts a decimal amount to cents
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// CatalogService manages the sellable catalog: products with their
// modifier groups, tax rules, payment methods and customers.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	groups     repository.ModifierGroupRepository
	taxes      repository.TaxRuleRepository
	methods    repository.PaymentMethodRepository
	customers  repository.CustomerRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	groups repository.ModifierGroupRepository,
	taxes repository.TaxRuleRepository,
	methods repository.PaymentMethodRepository,
	customers repository.CustomerRepository,
) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		groups:     groups,
		taxes:      taxes,
		methods:    methods,
		customers:  customers,
	}
}

// ProductInput represents product create/update input
type ProductInput struct {
	Name             string
	Barcode          string
	Price            float64
	Stock            int
	Description      string
	CategoryID       *uuid.UUID
	ModifierGroupIDs []uuid.UUID
}

// CreateProduct creates a new product with its modifier group links
func (s *CatalogService) CreateProduct(ctx context.Context, userID uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Product price cannot be negative")
	}
	if err := s.checkCategory(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		UserID:     userID,
		Name:       input.Name,
		Barcode:    input.Barcode,
		Price:      toCents(input.Price),
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
	}
	if input.Description != "" {
		product.Description = &input.Description
	}

	groups, err := s.resolveGroups(ctx, userID, input.ModifierGroupIDs)
	if err != nil {
		return nil, err
	}
	product.ModifierGroups = groups

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, product.ID)
}

// UpdateProduct updates a product and replaces its modifier group links
func (s *CatalogService) UpdateProduct(ctx context.Context, userID, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.getOwnProduct(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Product price cannot be negative")
	}
	if err := s.checkCategory(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	product.Barcode = input.Barcode
	product.Price = toCents(input.Price)
	product.Stock = input.Stock
	product.CategoryID = input.CategoryID
	product.Description = nil
	if input.Description != "" {
		product.Description = &input.Description
	}

	groups, err := s.resolveGroups(ctx, userID, input.ModifierGroupIDs)
	if err != nil {
		return nil, err
	}
	product.ModifierGroups = groups

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, product.ID)
}

// DeleteProduct removes a product from the catalog
func (s *CatalogService) DeleteProduct(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.getOwnProduct(ctx, userID, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// GetProduct returns a product with its modifier groups preloaded
func (s *CatalogService) GetProduct(ctx context.Context, userID, id uuid.UUID) (*entity.Product, error) {
	return s.getOwnProduct(ctx, userID, id)
}

// GetProductByBarcode looks a product up by its barcode
func (s *CatalogService) GetProductByBarcode(ctx context.Context, userID uuid.UUID, barcode string) (*entity.Product, error) {
	product, err := s.products.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts returns the user's products, paginated, with optional search
func (s *CatalogService) ListProducts(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	params.Validate()
	products, total, err := s.products.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(products, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

func (s *CatalogService) getOwnProduct(ctx context.Context, userID, id uuid.UUID) (*entity.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

func (s *CatalogService) resolveGroups(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]entity.ModifierGroup, error) {
	if len(ids) == 0 {
		return []entity.ModifierGroup{}, nil
	}
	groups := make([]entity.ModifierGroup, 0, len(ids))
	for _, id := range ids {
		group, err := s.groups.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if group == nil || group.UserID != userID {
			return nil, apperror.NewNotFoundError("Modifier group")
		}
		groups = append(groups, *group)
	}
	return groups, nil
}

func (s *CatalogService) checkCategory(ctx context.Context, userID uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	category, err := s.categories.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if category == nil || category.UserID != userID {
		return apperror.NewNotFoundError("Category")
	}
	return nil
}

// CreateCategory creates a product category
func (s *CatalogService) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}
	category := &entity.Category{
		UserID: userID,
		Name:   name,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category
func (s *CatalogService) UpdateCategory(ctx context.Context, userID, id uuid.UUID, name string) (*entity.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil || category.UserID != userID {
		return nil, apperror.NewNotFoundError("Category")
	}
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}
	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category. Products keep their category_id
// reference until edited; listings tolerate the dangling preload.
func (s *CatalogService) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil || category.UserID != userID {
		return apperror.NewNotFoundError("Category")
	}
	return s.categories.Delete(ctx, id)
}

// ListCategories returns the user's categories ordered by name
func (s *CatalogService) ListCategories(ctx context.Context, userID uuid.UUID) ([]entity.Category, error) {
	return s.categories.List(ctx, userID)
}

// ModifierOptionInput represents one option within a modifier group input
type ModifierOptionInput struct {
	Name     string
	Price    float64
	Position int
}

// ModifierGroupInput represents modifier group create/update input
type ModifierGroupInput struct {
	Name       string
	Obligatory bool
	Position   int
	Options    []ModifierOptionInput
}

// CreateModifierGroup creates a modifier group with its options
func (s *CatalogService) CreateModifierGroup(ctx context.Context, userID uuid.UUID, input *ModifierGroupInput) (*entity.ModifierGroup, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Modifier group name is required")
	}

	group := &entity.ModifierGroup{
		UserID:     userID,
		Name:       input.Name,
		Obligatory: input.Obligatory,
		Position:   input.Position,
	}
	for _, opt := range input.Options {
		if opt.Price < 0 {
			return nil, apperror.NewBadRequestError("Option price cannot be negative")
		}
		group.Options = append(group.Options, entity.ModifierOption{
			Name:     opt.Name,
			Price:    toCents(opt.Price),
			Position: opt.Position,
		})
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// UpdateModifierGroup updates a modifier group and replaces its options
func (s *CatalogService) UpdateModifierGroup(ctx context.Context, userID, id uuid.UUID, input *ModifierGroupInput) (*entity.ModifierGroup, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil || group.UserID != userID {
		return nil, apperror.NewNotFoundError("Modifier group")
	}

	if input.Name != "" {
		group.Name = input.Name
	}
	group.Obligatory = input.Obligatory
	group.Position = input.Position

	group.Options = group.Options[:0]
	for _, opt := range input.Options {
		if opt.Price < 0 {
			return nil, apperror.NewBadRequestError("Option price cannot be negative")
		}
		group.Options = append(group.Options, entity.ModifierOption{
			GroupID:  group.ID,
			Name:     opt.Name,
			Price:    toCents(opt.Price),
			Position: opt.Position,
		})
	}

	if err := s.groups.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteModifierGroup removes a modifier group
func (s *CatalogService) DeleteModifierGroup(ctx context.Context, userID, id uuid.UUID) error {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if group == nil || group.UserID != userID {
		return apperror.NewNotFoundError("Modifier group")
	}
	return s.groups.Delete(ctx, id)
}

// ListModifierGroups returns the user's modifier groups with options
func (s *CatalogService) ListModifierGroups(ctx context.Context, userID uuid.UUID) ([]entity.ModifierGroup, error) {
	return s.groups.List(ctx, userID)
}

// TaxRuleInput represents tax rule create/update input
type TaxRuleInput struct {
	Name   string
	Rate   float64
	Type   enum.TaxType
	Active bool
}

// CreateTaxRule creates a tax rule
func (s *CatalogService) CreateTaxRule(ctx context.Context, userID uuid.UUID, input *TaxRuleInput) (*entity.TaxRule, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Tax name is required")
	}
	if input.Rate < 0 || input.Rate > 100 {
		return nil, apperror.NewBadRequestError("Tax rate must be between 0 and 100")
	}

	rule := &entity.TaxRule{
		UserID: userID,
		Name:   input.Name,
		Rate:   input.Rate,
		Type:   input.Type,
		Active: input.Active,
	}
	if err := s.taxes.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// UpdateTaxRule updates a tax rule
func (s *CatalogService) UpdateTaxRule(ctx context.Context, userID, id uuid.UUID, input *TaxRuleInput) (*entity.TaxRule, error) {
	rule, err := s.taxes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil || rule.UserID != userID {
		return nil, apperror.NewNotFoundError("Tax rule")
	}
	if input.Rate < 0 || input.Rate > 100 {
		return nil, apperror.NewBadRequestError("Tax rate must be between 0 and 100")
	}

	if input.Name != "" {
		rule.Name = input.Name
	}
	rule.Rate = input.Rate
	rule.Type = input.Type
	rule.Active = input.Active

	if err := s.taxes.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteTaxRule removes a tax rule
func (s *CatalogService) DeleteTaxRule(ctx context.Context, userID, id uuid.UUID) error {
	rule, err := s.taxes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rule == nil || rule.UserID != userID {
		return apperror.NewNotFoundError("Tax rule")
	}
	return s.taxes.Delete(ctx, id)
}

// ListTaxRules returns all of the user's tax rules
func (s *CatalogService) ListTaxRules(ctx context.Context, userID uuid.UUID) ([]entity.TaxRule, error) {
	return s.taxes.List(ctx, userID)
}

// PaymentMethodInput represents payment method create/update input
type PaymentMethodInput struct {
	Name   string
	IsCash bool
	Active bool
}

// CreatePaymentMethod creates a payment method
func (s *CatalogService) CreatePaymentMethod(ctx context.Context, userID uuid.UUID, input *PaymentMethodInput) (*entity.PaymentMethod, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Payment method name is required")
	}

	method := &entity.PaymentMethod{
		UserID: userID,
		Name:   input.Name,
		IsCash: input.IsCash,
		Active: input.Active,
	}
	if err := s.methods.Create(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// UpdatePaymentMethod updates a payment method
func (s *CatalogService) UpdatePaymentMethod(ctx context.Context, userID, id uuid.UUID, input *PaymentMethodInput) (*entity.PaymentMethod, error) {
	method, err := s.methods.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil || method.UserID != userID {
		return nil, apperror.NewNotFoundError("Payment method")
	}

	if input.Name != "" {
		method.Name = input.Name
	}
	method.IsCash = input.IsCash
	method.Active = input.Active

	if err := s.methods.Update(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

// DeletePaymentMethod removes a payment method
func (s *CatalogService) DeletePaymentMethod(ctx context.Context, userID, id uuid.UUID) error {
	method, err := s.methods.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if method == nil || method.UserID != userID {
		return apperror.NewNotFoundError("Payment method")
	}
	return s.methods.Delete(ctx, id)
}

// ListPaymentMethods returns the user's payment methods. When
// activeOnly is set, only methods usable at checkout are returned.
func (s *CatalogService) ListPaymentMethods(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]entity.PaymentMethod, error) {
	if activeOnly {
		return s.methods.ListActive(ctx, userID)
	}
	return s.methods.List(ctx, userID)
}

// CustomerInput represents customer create/update input
type CustomerInput struct {
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Address string
}

// optStr maps an empty string to nil so optional customer fields stay
// NULL in the database instead of storing empty strings.
func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateCustomer creates a customer
func (s *CatalogService) CreateCustomer(ctx context.Context, userID uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	customer := &entity.Customer{
		UserID:  userID,
		Name:    input.Name,
		TaxID:   optStr(input.TaxID),
		Email:   optStr(input.Email),
		Phone:   optStr(input.Phone),
		Address: optStr(input.Address),
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer updates a customer
func (s *CatalogService) UpdateCustomer(ctx context.Context, userID, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.UserID != userID {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != "" {
		customer.Name = input.Name
	}
	customer.TaxID = optStr(input.TaxID)
	customer.Email = optStr(input.Email)
	customer.Phone = optStr(input.Phone)
	customer.Address = optStr(input.Address)

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer
func (s *CatalogService) DeleteCustomer(ctx context.Context, userID, id uuid.UUID) error {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil || customer.UserID != userID {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customers.Delete(ctx, id)
}

// ListCustomers returns the user's customers, paginated, with optional search
func (s *CatalogService) ListCustomers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customers.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
