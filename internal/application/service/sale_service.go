package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/repository"
	"github.com/smartinr/ventapos-api/pkg/apperror"
	"github.com/smartinr/ventapos-api/pkg/pagination"
)

// SaleService exposes the finalized sales history
type SaleService struct {
	sales repository.SaleRepository
}

// NewSaleService creates a new sale service
func NewSaleService(sales repository.SaleRepository) *SaleService {
	return &SaleService{sales: sales}
}

// Get returns one sale with its tax breakdown and customer
func (s *SaleService) Get(ctx context.Context, userID, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.UserID != userID {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// List returns the user's sales, newest first, paginated
func (s *SaleService) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	params.Validate()
	sales, total, err := s.sales.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ListBySession returns the sales recorded in one cash session
func (s *SaleService) ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]entity.Sale, error) {
	sales, err := s.sales.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := sales[:0]
	for _, sale := range sales {
		if sale.UserID == userID {
			out = append(out, sale)
		}
	}
	return out, nil
}
