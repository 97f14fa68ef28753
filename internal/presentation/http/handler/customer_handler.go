package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smartinr/ventapos-api/internal/application/service"
	"github.com/smartinr/ventapos-api/internal/presentation/http/dto/request"
	"github.com/smartinr/ventapos-api/internal/presentation/http/dto/response"
	"github.com/smartinr/ventapos-api/pkg/pagination"
	"github.com/smartinr/ventapos-api/pkg/utils"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	catalogService *service.CatalogService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(catalogService *service.CatalogService) *CustomerHandler {
	return &CustomerHandler{catalogService: catalogService}
}

// List handles listing customers with pagination and search
func (h *CustomerHandler) List(c *gin.Context) {
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
	search := c.Query("search")

	result, err := h.catalogService.ListCustomers(c.Request.Context(), userID, &params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.catalogService.CreateCustomer(c.Request.Context(), userID, &service.CustomerInput{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.catalogService.UpdateCustomer(c.Request.Context(), userID, id, &service.CustomerInput{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.catalogService.DeleteCustomer(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}
