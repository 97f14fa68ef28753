package request

import (
	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/enum"
)

// ProductRequest represents a product create/update request
type ProductRequest struct {
	Name             string      `json:"name" binding:"required,max=255"`
	Barcode          string      `json:"barcode" binding:"omitempty,max=64"`
	Price            float64     `json:"price" binding:"gte=0"`
	Stock            int         `json:"stock"`
	Description      string      `json:"description"`
	CategoryID       *uuid.UUID  `json:"category_id"`
	ModifierGroupIDs []uuid.UUID `json:"modifier_group_ids"`
}

// CategoryRequest represents a category create/update request
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// ModifierOptionRequest represents one option within a modifier group request
type ModifierOptionRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Price    float64 `json:"price" binding:"gte=0"`
	Position int     `json:"position"`
}

// ModifierGroupRequest represents a modifier group create/update request
type ModifierGroupRequest struct {
	Name       string                  `json:"name" binding:"required,max=255"`
	Obligatory bool                    `json:"obligatory"`
	Position   int                     `json:"position"`
	Options    []ModifierOptionRequest `json:"options" binding:"omitempty,dive"`
}

// TaxRuleRequest represents a tax rule create/update request
type TaxRuleRequest struct {
	Name   string       `json:"name" binding:"required,max=255"`
	Rate   float64      `json:"rate" binding:"gte=0,lte=100"`
	Type   enum.TaxType `json:"type"`
	Active bool         `json:"active"`
}

// PaymentMethodRequest represents a payment method create/update request
type PaymentMethodRequest struct {
	Name   string `json:"name" binding:"required,max=255"`
	IsCash bool   `json:"is_cash"`
	Active bool   `json:"active"`
}

// CustomerRequest represents a customer create/update request
type CustomerRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	TaxID   string `json:"tax_id" binding:"omitempty,max=32"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=32"`
	Address string `json:"address" binding:"omitempty,max=512"`
}
