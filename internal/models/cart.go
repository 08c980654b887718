package models

import "github.com/google/uuid"

// CartItem is one persisted line of an account cart. At most one row
// exists per (user, product); repeated adds increment the quantity.
type CartItem struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// CartLine is the view of a cart line joined with its product. Anonymous
// carts use "session_<productID>" ids; account carts use the numeric row id.
type CartLine struct {
	ID             string `json:"id"`
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name"`
	ProductDesc    string `json:"product_description"`
	ProductImage   string `json:"product_image,omitempty"`
	UnitPriceCents int64  `json:"price_cents"`
	Quantity       int    `json:"quantity"`
	LineTotalCents int64  `json:"subtotal_cents"`
}

type CartSummary struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TotalCents    int64 `json:"total_cents"`
}

type CartView struct {
	Items   []CartLine  `json:"items"`
	Summary CartSummary `json:"summary"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

// UpdateQuantityRequest replaces a line's quantity; anything below one
// removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type PatchQuantityRequest struct {
	Quantity *int `json:"quantity"`
}
