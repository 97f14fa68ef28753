package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smartinr/ventapos-api/internal/application/service"
	"github.com/smartinr/ventapos-api/internal/presentation/http/dto/request"
	"github.com/smartinr/ventapos-api/internal/presentation/http/dto/response"
	"github.com/smartinr/ventapos-api/pkg/pagination"
	"github.com/smartinr/ventapos-api/pkg/utils"
)

// CashSessionHandler handles cash drawer session HTTP requests
type CashSessionHandler struct {
	sessionService *service.CashSessionService
}

// NewCashSessionHandler creates a new cash session handler
func NewCashSessionHandler(sessionService *service.CashSessionService) *CashSessionHandler {
	return &CashSessionHandler{sessionService: sessionService}
}

// Active returns the cashier's open session
func (h *CashSessionHandler) Active(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	session, err := h.sessionService.Active(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved successfully", session)
}

// Open opens a cash session on a terminal
func (h *CashSessionHandler) Open(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.sessionService.Open(c.Request.Context(), userID, req.Terminal, toCents(req.OpeningFloat))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Session opened", session)
}

// Close closes the cashier's open session with the counted drawer cash
func (h *CashSessionHandler) Close(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.sessionService.Close(c.Request.Context(), userID, toCents(req.CountedCash))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session closed", session)
}

// CloseByID closes any open session by its ID. Admin operation for
// sessions left open by another cashier.
func (h *CashSessionHandler) CloseByID(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.sessionService.CloseByID(c.Request.Context(), id, toCents(req.CountedCash))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session closed", session)
}

// ListOpen lists the cashier's currently open sessions
func (h *CashSessionHandler) ListOpen(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	sessions, err := h.sessionService.ListOpen(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Open sessions retrieved successfully", sessions)
}

// History lists past sessions, newest first
func (h *CashSessionHandler) History(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.sessionService.History(c.Request.Context(), userID, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sessions retrieved successfully", result)
}
