package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smartinr/ventapos-api/internal/application/service"
	"github.com/smartinr/ventapos-api/internal/presentation/http/dto/request"
	"github.com/smartinr/ventapos-api/internal/presentation/http/dto/response"
	"github.com/smartinr/ventapos-api/pkg/utils"
)

// CatalogHandler handles the configuration side of the catalog:
// categories, modifier groups, tax rules and payment methods.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategories handles listing categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	categories, err := h.catalogService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// CreateCategory handles creating a category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), userID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// UpdateCategory handles renaming a category
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req request.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), userID, id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated successfully", category)
}

// DeleteCategory handles deleting a category
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted successfully", nil)
}

// ListModifierGroups handles listing modifier groups with their options
func (h *CatalogHandler) ListModifierGroups(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	groups, err := h.catalogService.ListModifierGroups(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Modifier groups retrieved successfully", groups)
}

// CreateModifierGroup handles creating a modifier group
func (h *CatalogHandler) CreateModifierGroup(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ModifierGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.catalogService.CreateModifierGroup(c.Request.Context(), userID, modifierGroupInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Modifier group created successfully", group)
}

// UpdateModifierGroup handles updating a modifier group and its options
func (h *CatalogHandler) UpdateModifierGroup(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid modifier group ID")
		return
	}

	var req request.ModifierGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.catalogService.UpdateModifierGroup(c.Request.Context(), userID, id, modifierGroupInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Modifier group updated successfully", group)
}

// DeleteModifierGroup handles deleting a modifier group
func (h *CatalogHandler) DeleteModifierGroup(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid modifier group ID")
		return
	}

	if err := h.catalogService.DeleteModifierGroup(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Modifier group deleted successfully", nil)
}

func modifierGroupInput(req *request.ModifierGroupRequest) *service.ModifierGroupInput {
	input := &service.ModifierGroupInput{
		Name:       req.Name,
		Obligatory: req.Obligatory,
		Position:   req.Position,
	}
	for _, opt := range req.Options {
		input.Options = append(input.Options, service.ModifierOptionInput{
			Name:     opt.Name,
			Price:    opt.Price,
			Position: opt.Position,
		})
	}
	return input
}

// ListTaxRules handles listing tax rules
func (h *CatalogHandler) ListTaxRules(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	rules, err := h.catalogService.ListTaxRules(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rules retrieved successfully", rules)
}

// CreateTaxRule handles creating a tax rule
func (h *CatalogHandler) CreateTaxRule(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.TaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rule, err := h.catalogService.CreateTaxRule(c.Request.Context(), userID, &service.TaxRuleInput{
		Name:   req.Name,
		Rate:   req.Rate,
		Type:   req.Type,
		Active: req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax rule created successfully", rule)
}

// UpdateTaxRule handles updating a tax rule
func (h *CatalogHandler) UpdateTaxRule(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax rule ID")
		return
	}

	var req request.TaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rule, err := h.catalogService.UpdateTaxRule(c.Request.Context(), userID, id, &service.TaxRuleInput{
		Name:   req.Name,
		Rate:   req.Rate,
		Type:   req.Type,
		Active: req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rule updated successfully", rule)
}

// DeleteTaxRule handles deleting a tax rule
func (h *CatalogHandler) DeleteTaxRule(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax rule ID")
		return
	}

	if err := h.catalogService.DeleteTaxRule(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rule deleted successfully", nil)
}

// ListPaymentMethods handles listing payment methods. ?active=true
// narrows to the methods usable at checkout.
func (h *CatalogHandler) ListPaymentMethods(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	activeOnly := c.Query("active") == "true"
	methods, err := h.catalogService.ListPaymentMethods(c.Request.Context(), userID, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment methods retrieved successfully", methods)
}

// CreatePaymentMethod handles creating a payment method
func (h *CatalogHandler) CreatePaymentMethod(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := h.catalogService.CreatePaymentMethod(c.Request.Context(), userID, &service.PaymentMethodInput{
		Name:   req.Name,
		IsCash: req.IsCash,
		Active: req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment method created successfully", method)
}

// UpdatePaymentMethod handles updating a payment method
func (h *CatalogHandler) UpdatePaymentMethod(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}

	var req request.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := h.catalogService.UpdatePaymentMethod(c.Request.Context(), userID, id, &service.PaymentMethodInput{
		Name:   req.Name,
		IsCash: req.IsCash,
		Active: req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method updated successfully", method)
}

// DeletePaymentMethod handles deleting a payment method
func (h *CatalogHandler) DeletePaymentMethod(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}

	if err := h.catalogService.DeletePaymentMethod(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method deleted successfully", nil)
}
