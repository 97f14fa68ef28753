package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID returns the product with its modifier groups and options preloaded
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error)
	// AtomicDecrementBatch atomically decrements stock for multiple products.
	// Returns IDs that failed on insufficient stock; any failure rolls back the batch.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch atomically restores stock (for cancellations/returns).
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]entity.Category, error)
}

// ModifierGroupRepository defines the interface for modifier group data operations
type ModifierGroupRepository interface {
	Create(ctx context.Context, group *entity.ModifierGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ModifierGroup, error)
	Update(ctx context.Context, group *entity.ModifierGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]entity.ModifierGroup, error)
}

// TaxRuleRepository defines the interface for tax rule data operations
type TaxRuleRepository interface {
	Create(ctx context.Context, rule *entity.TaxRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxRule, error)
	Update(ctx context.Context, rule *entity.TaxRule) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]entity.TaxRule, error)
	// ListActive returns only the rules with Active=true, the set that
	// participates in ticket totals.
	ListActive(ctx context.Context, userID uuid.UUID) ([]entity.TaxRule, error)
}

// PaymentMethodRepository defines the interface for payment method data operations
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *entity.PaymentMethod) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error)
	Update(ctx context.Context, method *entity.PaymentMethod) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]entity.PaymentMethod, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]entity.PaymentMethod, error)
}

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
