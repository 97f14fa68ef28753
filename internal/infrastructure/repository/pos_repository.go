package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
	domainRepo "github.com/smartinr/ventapos-api/internal/domain/repository"
	"github.com/smartinr/ventapos-api/pkg/apperror"
	"github.com/smartinr/ventapos-api/pkg/pagination"
	"gorm.io/gorm"
)

type suspendedTicketRepository struct {
	db *gorm.DB
}

// NewSuspendedTicketRepository creates a new suspended ticket repository
func NewSuspendedTicketRepository(db *gorm.DB) domainRepo.SuspendedTicketRepository {
	return &suspendedTicketRepository{db: db}
}

func (r *suspendedTicketRepository) Save(ctx context.Context, ticket *entity.SuspendedTicket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *suspendedTicketRepository) Get(ctx context.Context, id uuid.UUID) (*entity.SuspendedTicket, error) {
	var ticket entity.SuspendedTicket
	err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *suspendedTicketRepository) GetByName(ctx context.Context, userID uuid.UUID, name string) (*entity.SuspendedTicket, error) {
	var ticket entity.SuspendedTicket
	err := r.db.WithContext(ctx).First(&ticket, "user_id = ? AND name = ?", userID, name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *suspendedTicketRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.SuspendedTicket, error) {
	var tickets []entity.SuspendedTicket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&tickets).Error
	return tickets, err
}

func (r *suspendedTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Hard delete: a loaded or merged ticket must free its name
	return r.db.WithContext(ctx).Unscoped().Delete(&entity.SuspendedTicket{}, "id = ?", id).Error
}

type cashSessionRepository struct {
	db *gorm.DB
}

// NewCashSessionRepository creates a new cash session repository
func NewCashSessionRepository(db *gorm.DB) domainRepo.CashSessionRepository {
	return &cashSessionRepository{db: db}
}

func (r *cashSessionRepository) Create(ctx context.Context, session *entity.CashSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *cashSessionRepository) Update(ctx context.Context, session *entity.CashSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *cashSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db.WithContext(ctx).
		Preload("MethodSales").
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *cashSessionRepository) GetOpen(ctx context.Context, terminal string) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db.WithContext(ctx).
		First(&session, "terminal = ? AND status = ?", terminal, enum.SessionStatusOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *cashSessionRepository) GetOpenByUser(ctx context.Context, userID uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := r.db.WithContext(ctx).
		First(&session, "user_id = ? AND status = ?", userID, enum.SessionStatusOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *cashSessionRepository) ListOpen(ctx context.Context, userID uuid.UUID) ([]entity.CashSession, error) {
	var sessions []entity.CashSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, enum.SessionStatusOpen).
		Order("opened_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *cashSessionRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.CashSession, int64, error) {
	var sessions []entity.CashSession
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CashSession{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("MethodSales").
		Order("opened_at DESC").
		Find(&sessions).Error

	return sessions, total, err
}

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Finalize runs the whole checkout write in one transaction. The
// session increment is conditioned on the row still being open, so a
// drawer closed between the checkout snapshot and this write keeps its
// close figures and the sale is not recorded.
func (r *saleRepository) Finalize(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.CashSession{}).
			Where("id = ? AND status = ?", sale.SessionID, enum.SessionStatusOpen).
			Updates(map[string]interface{}{
				"sales_count": gorm.Expr("sales_count + 1"),
				"sales_total": gorm.Expr("sales_total + ?", sale.Total),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.ErrSessionClosed
		}

		var row entity.SessionMethodSales
		err := tx.First(&row, "session_id = ? AND method_id = ?", sale.SessionID, sale.PaymentMethodID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = entity.SessionMethodSales{
				SessionID:  sale.SessionID,
				MethodID:   sale.PaymentMethodID,
				MethodName: sale.PaymentMethod,
				Count:      1,
				Total:      sale.Total,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			row.Count++
			row.Total += sale.Total
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}

		return tx.Create(sale).Error
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Taxes").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Customer").
		Preload("Taxes").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Preload("Taxes").
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.User{}, "id = ?", id).Error
}

func (r *userRepository) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}
