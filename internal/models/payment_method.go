package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod holds non-sensitive checkout info only; full card numbers
// never enter the system.
type PaymentMethod struct {
	ID             int64     `json:"id"`
	UserID         uuid.UUID `json:"-"`
	CardholderName string    `json:"cardholder_name"`
	Brand          string    `json:"brand"`
	Last4          string    `json:"last4"`
	ExpMonth       int       `json:"exp_month"`
	ExpYear        int       `json:"exp_year"`
	BillingPostal  string    `json:"billing_postal,omitempty"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

type PaymentMethodSummary struct {
	ID       int64  `json:"id"`
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
}

func (p *PaymentMethod) Summary() *PaymentMethodSummary {
	return &PaymentMethodSummary{
		ID:       p.ID,
		Brand:    p.Brand,
		Last4:    p.Last4,
		ExpMonth: p.ExpMonth,
		ExpYear:  p.ExpYear,
	}
}

type CreatePaymentMethodRequest struct {
	CardholderName string  `json:"cardholder_name" validate:"required"`
	Brand          string  `json:"brand" validate:"required"`
	Last4          string  `json:"last4" validate:"required,len=4,numeric"`
	ExpMonth       int     `json:"exp_month" validate:"required,gte=1,lte=12"`
	ExpYear        int     `json:"exp_year" validate:"required"`
	BillingPostal  *string `json:"billing_postal"`
	IsDefault      bool    `json:"is_default"`
}

type UpdatePaymentMethodRequest struct {
	CardholderName *string `json:"cardholder_name" validate:"omitempty,min=1"`
	Brand          *string `json:"brand" validate:"omitempty,min=1"`
	Last4          *string `json:"last4" validate:"omitempty,len=4,numeric"`
	ExpMonth       *int    `json:"exp_month" validate:"omitempty,gte=1,lte=12"`
	ExpYear        *int    `json:"exp_year"`
	BillingPostal  *string `json:"billing_postal"`
	IsDefault      *bool   `json:"is_default"`
}

type PaymentMethodListResponse struct {
	Items []*PaymentMethod `json:"items"`
}
