package request

import "github.com/google/uuid"

// AddItemRequest adds a product to the active ticket. Options maps a
// modifier group ID to the option IDs chosen within it.
type AddItemRequest struct {
	ProductID uuid.UUID                 `json:"product_id" binding:"required"`
	Options   map[uuid.UUID][]uuid.UUID `json:"options"`
}

// AddByBarcodeRequest adds a product looked up by barcode
type AddByBarcodeRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// UpdateQuantityRequest changes a ticket line's quantity by a delta
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// SetCustomerRequest attaches a customer and comment to the active ticket
type SetCustomerRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
	Comment    string     `json:"comment" binding:"omitempty,max=512"`
}

// SuspendRequest parks the active ticket under a name
type SuspendRequest struct {
	Name string `json:"name" binding:"omitempty,max=255"`
}

// SplitRequest moves partial quantities of the active ticket into a new
// suspended ticket. Selection maps line IDs to units to move.
type SplitRequest struct {
	Selection map[string]int `json:"selection" binding:"required"`
	Name      string         `json:"name" binding:"omitempty,max=255"`
}

// MergeRequest folds suspended tickets into the active ticket
type MergeRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// CheckoutRequest finalizes the active ticket into a sale
type CheckoutRequest struct {
	PaymentMethodID uuid.UUID `json:"payment_method_id" binding:"required"`
	Tendered        float64   `json:"tendered" binding:"gte=0"`
}
