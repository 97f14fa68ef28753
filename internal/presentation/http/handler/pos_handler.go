package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smartinr/ventapos-api/internal/application/service"
	"github.com/smartinr/ventapos-api/internal/presentation/http/dto/request"
	"github.com/smartinr/ventapos-api/internal/presentation/http/dto/response"
	"github.com/smartinr/ventapos-api/pkg/utils"
)

// PosHandler handles the active-ticket operations of the point of sale
type PosHandler struct {
	posService *service.PosService
}

// NewPosHandler creates a new POS handler
func NewPosHandler(posService *service.PosService) *PosHandler {
	return &PosHandler{posService: posService}
}

// GetTicket returns the cashier's active ticket with live totals
func (h *PosHandler) GetTicket(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	view, err := h.posService.ActiveTicket(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket retrieved successfully", view)
}

// AddItem adds a product with its chosen modifiers to the active ticket
func (h *PosHandler) AddItem(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.posService.AddItem(c.Request.Context(), userID, req.ProductID, req.Options)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", view)
}

// AddItemByBarcode adds a product looked up by barcode
func (h *PosHandler) AddItemByBarcode(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddByBarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.posService.AddItemByBarcode(c.Request.Context(), userID, req.Barcode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", view)
}

// UpdateQuantity changes a line's quantity by a signed delta
func (h *PosHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.posService.UpdateQuantity(c.Request.Context(), userID, c.Param("lineId"), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity updated", view)
}

// RemoveItem removes a line from the active ticket
func (h *PosHandler) RemoveItem(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	view, err := h.posService.RemoveItem(c.Request.Context(), userID, c.Param("lineId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", view)
}

// ClearTicket empties the active ticket
func (h *PosHandler) ClearTicket(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	view, err := h.posService.ClearTicket(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket cleared", view)
}

// SetCustomer attaches a customer and comment to the active ticket
func (h *PosHandler) SetCustomer(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.posService.SetCustomer(c.Request.Context(), userID, req.CustomerID, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer set", view)
}

// Suspend parks the active ticket under a name for later recall
func (h *PosHandler) Suspend(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	suspended, err := h.posService.Suspend(c.Request.Context(), userID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket suspended", suspended)
}

// LoadSuspended recalls a suspended ticket into the empty active ticket
func (h *PosHandler) LoadSuspended(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	view, err := h.posService.LoadSuspended(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket loaded", view)
}

// ListSuspended lists the cashier's parked tickets
func (h *PosHandler) ListSuspended(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	tickets, err := h.posService.ListSuspended(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Open tickets retrieved successfully", tickets)
}

// DiscardSuspended deletes a parked ticket without loading it
func (h *PosHandler) DiscardSuspended(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	if err := h.posService.DiscardSuspended(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Open ticket discarded", nil)
}

// Split moves selected quantities off the active ticket into a new
// suspended ticket
func (h *PosHandler) Split(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	suspended, err := h.posService.Split(c.Request.Context(), userID, req.Selection, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket split", suspended)
}

// Merge folds suspended tickets into the active ticket
func (h *PosHandler) Merge(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.posService.Merge(c.Request.Context(), userID, req.IDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tickets merged", view)
}

// Checkout finalizes the active ticket into a sale
func (h *PosHandler) Checkout(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.posService.Checkout(c.Request.Context(), userID, req.PaymentMethodID, toCents(req.Tendered))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed", sale)
}
