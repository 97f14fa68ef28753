package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
	"github.com/smartinr/ventapos-api/internal/domain/repository"
	"github.com/smartinr/ventapos-api/pkg/apperror"
	"github.com/smartinr/ventapos-api/pkg/pagination"
)

// CashSessionService persists the session lifecycle the manager drives:
// opening a drawer on a terminal, closing it against a physical count,
// and session history.
type CashSessionService struct {
	sessions repository.CashSessionRepository
	manager  *CashSessionManager
}

// NewCashSessionService creates a new cash session service
func NewCashSessionService(sessions repository.CashSessionRepository) *CashSessionService {
	return &CashSessionService{
		sessions: sessions,
		manager:  NewCashSessionManager(),
	}
}

// Active returns the cashier's open session, or a not-found error when
// no drawer is open.
func (s *CashSessionService) Active(ctx context.Context, userID uuid.UUID) (*entity.CashSession, error) {
	session, err := s.sessions.GetOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrNoOpenSession
	}
	return session, nil
}

// Open starts a session on a terminal with an opening float. Fails when
// the terminal or the cashier already has an open session.
func (s *CashSessionService) Open(ctx context.Context, userID uuid.UUID, terminal string, openingFloat int64) (*entity.CashSession, error) {
	if terminal == "" {
		return nil, apperror.NewBadRequestError("Terminal is required")
	}

	mine, err := s.sessions.GetOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if mine != nil {
		return nil, apperror.ErrSessionAlreadyOpen
	}

	current, err := s.sessions.GetOpen(ctx, terminal)
	if err != nil {
		return nil, err
	}

	session, err := s.manager.Open(current, userID, terminal, openingFloat)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Close finalizes the cashier's open session with the counted cash
func (s *CashSessionService) Close(ctx context.Context, userID uuid.UUID, countedCash int64) (*entity.CashSession, error) {
	session, err := s.sessions.GetOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrNoOpenSession
	}
	return s.close(ctx, session, countedCash)
}

// CloseByID finalizes a specific open session. Used by administrators
// to close a drawer a cashier left open.
func (s *CashSessionService) CloseByID(ctx context.Context, id uuid.UUID, countedCash int64) (*entity.CashSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Cash session")
	}
	return s.close(ctx, session, countedCash)
}

func (s *CashSessionService) close(ctx context.Context, session *entity.CashSession, countedCash int64) (*entity.CashSession, error) {
	if err := s.manager.Close(session, countedCash); err != nil {
		return nil, err
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, session.ID)
}

// ListOpen returns the open sessions visible to the user
func (s *CashSessionService) ListOpen(ctx context.Context, userID uuid.UUID) ([]entity.CashSession, error) {
	return s.sessions.ListOpen(ctx, userID)
}

// History returns the user's sessions, newest first, paginated
func (s *CashSessionService) History(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.CashSession], error) {
	params.Validate()
	sessions, total, err := s.sessions.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sessions, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// CloseReport builds the printable close report for a closed session
func (s *CashSessionService) CloseReport(ctx context.Context, id uuid.UUID, cashier string) (*entity.CloseReport, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Cash session")
	}
	if session.IsOpen() {
		return nil, apperror.NewBadRequestError("Session is still open")
	}

	report := &entity.CloseReport{
		Number:       session.Number,
		Cashier:      cashier,
		Terminal:     session.Terminal,
		OpenedAt:     session.OpenedAt.Format("02/01/2006 15:04"),
		ClosedAt:     session.ClosedAt.Format("02/01/2006 15:04"),
		OpeningFloat: float64(session.OpeningFloat) / 100,
		SalesCount:   session.SalesCount,
		SalesTotal:   float64(session.SalesTotal) / 100,
		Expected:     float64(session.Expected()) / 100,
	}
	if session.CountedCash != nil {
		report.CountedCash = float64(*session.CountedCash) / 100
	}
	if session.Variance != nil {
		report.Variance = float64(*session.Variance) / 100
	}
	for _, ms := range session.MethodSales {
		report.MethodSales = append(report.MethodSales, entity.CloseReportLine{
			MethodName: ms.MethodName,
			Count:      ms.Count,
			Total:      float64(ms.Total) / 100,
		})
	}
	return report, nil
}
