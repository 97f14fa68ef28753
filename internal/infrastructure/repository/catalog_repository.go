package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	domainRepo "github.com/smartinr/ventapos-api/internal/domain/repository"
	"github.com/smartinr/ventapos-api/pkg/pagination"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("ModifierGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("modifier_groups.position ASC")
		}).
		Preload("ModifierGroups.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("modifier_options.position ASC")
		}).
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("ModifierGroups.Options").
		First(&product, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(product).Association("ModifierGroups").Replace(product.ModifierGroups); err != nil {
			return err
		}
		return tx.Save(product).Error
	})
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{}).Where("user_id = ?", userID)

	if search != "" {
		query = query.Where("name ILIKE ? OR barcode ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Category").
		Preload("ModifierGroups.Options").
		Order("name ASC").
		Find(&products).Error

	return products, total, err
}

// AtomicDecrementBatch atomically decrements stock for multiple products in a single transaction.
// If any product has insufficient stock, the entire transaction is rolled back.
func (r *productRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range decrements {
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND stock >= ?", id, amount).
				Update("stock", gorm.Expr("stock - ?", amount))

			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}
		return nil
	})

	// Rolled back on insufficient stock: report the failures, not the error
	if err == gorm.ErrInvalidTransaction && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

// AtomicIncrementBatch atomically restores stock (for cancellations/returns).
func (r *productRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	if len(increments) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range increments {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", id).
				Update("stock", gorm.Expr("stock + ?", amount)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

type modifierGroupRepository struct {
	db *gorm.DB
}

// NewModifierGroupRepository creates a new modifier group repository
func NewModifierGroupRepository(db *gorm.DB) domainRepo.ModifierGroupRepository {
	return &modifierGroupRepository{db: db}
}

func (r *modifierGroupRepository) Create(ctx context.Context, group *entity.ModifierGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *modifierGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ModifierGroup, error) {
	var group entity.ModifierGroup
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("modifier_options.position ASC")
		}).
		First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *modifierGroupRepository) Update(ctx context.Context, group *entity.ModifierGroup) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Options are replaced wholesale on update
		if err := tx.Where("group_id = ?", group.ID).Delete(&entity.ModifierOption{}).Error; err != nil {
			return err
		}
		return tx.Save(group).Error
	})
}

func (r *modifierGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&entity.ModifierOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.ModifierGroup{}, "id = ?", id).Error
	})
}

func (r *modifierGroupRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.ModifierGroup, error) {
	var groups []entity.ModifierGroup
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("modifier_options.position ASC")
		}).
		Order("position ASC").
		Find(&groups).Error
	return groups, err
}

type taxRuleRepository struct {
	db *gorm.DB
}

// NewTaxRuleRepository creates a new tax rule repository
func NewTaxRuleRepository(db *gorm.DB) domainRepo.TaxRuleRepository {
	return &taxRuleRepository{db: db}
}

func (r *taxRuleRepository) Create(ctx context.Context, rule *entity.TaxRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *taxRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxRule, error) {
	var rule entity.TaxRule
	err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rule, err
}

func (r *taxRuleRepository) Update(ctx context.Context, rule *entity.TaxRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *taxRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TaxRule{}, "id = ?", id).Error
}

func (r *taxRuleRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.TaxRule, error) {
	var rules []entity.TaxRule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&rules).Error
	return rules, err
}

func (r *taxRuleRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]entity.TaxRule, error) {
	var rules []entity.TaxRule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("name ASC").
		Find(&rules).Error
	return rules, err
}

type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a new payment method repository
func NewPaymentMethodRepository(db *gorm.DB) domainRepo.PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *entity.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &method, err
}

func (r *paymentMethodRepository) Update(ctx context.Context, method *entity.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PaymentMethod{}, "id = ?", id).Error
}

func (r *paymentMethodRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("name ASC").
		Find(&methods).Error
	return methods, err
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{}).Where("user_id = ?", userID)

	if search != "" {
		query = query.Where("name ILIKE ? OR tax_id ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}
