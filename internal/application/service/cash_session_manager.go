package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
	"github.com/smartinr/ventapos-api/pkg/apperror"
	"github.com/smartinr/ventapos-api/pkg/utils"
)

// CashSessionManager drives the open -> record -> close lifecycle of a
// cash session. It is pure state machine logic; persistence belongs to
// the caller.
type CashSessionManager struct{}

// NewCashSessionManager creates a new cash session manager
func NewCashSessionManager() *CashSessionManager {
	return &CashSessionManager{}
}

// Open starts a new session for a terminal. Current is the terminal's
// latest session (nil when none); opening while it is still open fails.
func (m *CashSessionManager) Open(current *entity.CashSession, userID uuid.UUID, terminal string, openingFloat int64) (*entity.CashSession, error) {
	if current != nil && current.IsOpen() {
		return nil, apperror.ErrSessionAlreadyOpen
	}
	if openingFloat < 0 {
		return nil, apperror.NewBadRequestError("Opening float cannot be negative")
	}

	return &entity.CashSession{
		Number:       utils.GenerateSessionNumber(),
		UserID:       userID,
		Terminal:     terminal,
		Status:       enum.SessionStatusOpen,
		OpeningFloat: openingFloat,
		OpenedAt:     time.Now(),
	}, nil
}

// RecordSale adds one sale's grand total to the session counters.
func (m *CashSessionManager) RecordSale(s *entity.CashSession, amount int64) error {
	if s == nil {
		return apperror.ErrNoOpenSession
	}
	if !s.IsOpen() {
		return apperror.ErrSessionClosed
	}

	s.SalesCount++
	s.SalesTotal += amount
	return nil
}

// Close finalizes the session with the physically counted cash,
// deriving the variance against the expected drawer amount. A negative
// variance means the drawer is short. Closed sessions reject further
// sales and a second close.
func (m *CashSessionManager) Close(s *entity.CashSession, countedCash int64) error {
	if s == nil {
		return apperror.ErrNoOpenSession
	}
	if !s.IsOpen() {
		return apperror.ErrSessionClosed
	}
	if countedCash < 0 {
		return apperror.NewBadRequestError("Counted cash cannot be negative")
	}

	now := time.Now()
	variance := countedCash - s.Expected()
	s.CountedCash = &countedCash
	s.Variance = &variance
	s.Status = enum.SessionStatusClosed
	s.ClosedAt = &now
	return nil
}
