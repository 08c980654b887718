package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

// Orders move one way: placed -> cancelled. Everything else is a conflict.
const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	ProductID      int64     `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	LineTotalCents int64     `json:"line_total_cents"`
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	PaymentMethodID *int64      `json:"payment_method_id,omitempty"`
	Status          OrderStatus `json:"status"`
	TotalCents      int64       `json:"total_cents"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items,omitempty"`
}

type CheckoutRequest struct {
	PaymentMethodID *int64 `json:"payment_method_id" validate:"omitempty,gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=cancelled"`
}

type OrderListResponse struct {
	Items []Order `json:"items"`
}

// CheckoutResponse echoes the placed order plus the charged method, for
// the confirmation screen.
type CheckoutResponse struct {
	Order         *Order                `json:"order"`
	PaymentMethod *PaymentMethodSummary `json:"payment_method"`
}

// ShippingDetails is the session-held first step of the checkout wizard.
type ShippingDetails struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

type SelectPaymentRequest struct {
	PaymentMethodID int64 `json:"payment_method_id" validate:"required,gt=0"`
}

// CheckoutState is the review step: the live cart snapshot plus whatever
// the wizard has stashed so far.
type CheckoutState struct {
	Cart            *CartView        `json:"cart"`
	Shipping        *ShippingDetails `json:"shipping,omitempty"`
	PaymentMethodID *int64           `json:"payment_method_id,omitempty"`
}
