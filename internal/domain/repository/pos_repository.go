package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/pkg/pagination"
)

// SuspendedTicketRepository defines the interface for the suspended
// ticket store. The POS engine calls it at suspend, load and post-merge
// cleanup but does not own its implementation.
type SuspendedTicketRepository interface {
	Save(ctx context.Context, ticket *entity.SuspendedTicket) error
	Get(ctx context.Context, id uuid.UUID) (*entity.SuspendedTicket, error)
	// GetByName looks a suspended ticket up by its label, used for the
	// name-uniqueness check.
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*entity.SuspendedTicket, error)
	List(ctx context.Context, userID uuid.UUID) ([]entity.SuspendedTicket, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CashSessionRepository defines the interface for the cash session store
type CashSessionRepository interface {
	Create(ctx context.Context, session *entity.CashSession) error
	Update(ctx context.Context, session *entity.CashSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error)
	// GetOpen returns the open session for a terminal, or nil when the
	// drawer is closed. This snapshot is authoritative for the
	// one-open-session-per-terminal invariant.
	GetOpen(ctx context.Context, terminal string) (*entity.CashSession, error)
	// GetOpenByUser returns the open session belonging to a cashier.
	GetOpenByUser(ctx context.Context, userID uuid.UUID) (*entity.CashSession, error)
	ListOpen(ctx context.Context, userID uuid.UUID) ([]entity.CashSession, error)
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.CashSession, int64, error)
}

// SaleRepository defines the interface for finalized sale persistence
type SaleRepository interface {
	// Finalize persists a sale and folds its total into the session's
	// counters and per-method breakdown in one transaction. The session
	// row is matched conditionally on still being open; a drawer closed
	// since the checkout snapshot was taken yields ErrSessionClosed and
	// writes nothing.
	Finalize(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Sale, int64, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.Sale, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.User, error)
}
