package service

import (
	"context"
	"time"

	"github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/models"
	repository "github.com/R-umaria/boxedwithlove/internal/repositories"
	"github.com/google/uuid"
)

// PaymentMethodService manages stored cards. Two rules hold at all times:
// a user's first card is always the default, and at most one card per user
// carries the default flag.
type PaymentMethodService struct {
	repo repository.PaymentMethodRepository
}

func NewPaymentMethodService(repo repository.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{repo: repo}
}

// validateExpYear keeps the year roughly sane; full expiry validation is a
// gateway concern this system does not have.
func validateExpYear(year int) error {
	now := time.Now().UTC().Year()

	if year < now-1 || year > now+25 {
		return errors.AddValidationError("exp_year", "out of allowed range")
	}

	return nil
}

func (s *PaymentMethodService) CreatePaymentMethod(ctx context.Context, userID uuid.UUID, req *models.CreatePaymentMethodRequest) (*models.PaymentMethod, error) {

	if err := validateExpYear(req.ExpYear); err != nil {
		return nil, err
	}

	method := &models.PaymentMethod{
		UserID:         userID,
		CardholderName: req.CardholderName,
		Brand:          req.Brand,
		Last4:          req.Last4,
		ExpMonth:       req.ExpMonth,
		ExpYear:        req.ExpYear,
		IsDefault:      req.IsDefault,
	}

	if req.BillingPostal != nil {
		method.BillingPostal = *req.BillingPostal
	}

	if err := s.repo.CreatePaymentMethod(ctx, method); err != nil {
		return nil, errors.DatabaseError("Failed to save payment method").WithError(err)
	}

	return method, nil
}

func (s *PaymentMethodService) ListPaymentMethods(ctx context.Context, userID uuid.UUID) (*models.PaymentMethodListResponse, error) {

	methods, err := s.repo.ListPaymentMethods(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load payment methods").WithError(err)
	}

	if methods == nil {
		methods = []*models.PaymentMethod{}
	}

	return &models.PaymentMethodListResponse{Items: methods}, nil
}

func (s *PaymentMethodService) GetPaymentMethod(ctx context.Context, userID uuid.UUID, id int64) (*models.PaymentMethod, error) {

	method, err := s.repo.GetPaymentMethodByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFoundError("Payment method not found").WithError(err)
	}

	return method, nil
}

// ReplacePaymentMethod is the PUT semantics: every stored field is
// overwritten from the request.
func (s *PaymentMethodService) ReplacePaymentMethod(ctx context.Context, userID uuid.UUID, id int64, req *models.CreatePaymentMethodRequest) (*models.PaymentMethod, error) {

	if err := validateExpYear(req.ExpYear); err != nil {
		return nil, err
	}

	method, err := s.repo.GetPaymentMethodByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFoundError("Payment method not found").WithError(err)
	}

	method.CardholderName = req.CardholderName
	method.Brand = req.Brand
	method.Last4 = req.Last4
	method.ExpMonth = req.ExpMonth
	method.ExpYear = req.ExpYear
	method.IsDefault = req.IsDefault

	if req.BillingPostal != nil {
		method.BillingPostal = *req.BillingPostal
	} else {
		method.BillingPostal = ""
	}

	if err := s.repo.UpdatePaymentMethod(ctx, method); err != nil {
		return nil, errors.DatabaseError("Failed to update payment method").WithError(err)
	}

	return method, nil
}

// UpdatePaymentMethod is the PATCH semantics: only fields present in the
// request change.
func (s *PaymentMethodService) UpdatePaymentMethod(ctx context.Context, userID uuid.UUID, id int64, req *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error) {

	method, err := s.repo.GetPaymentMethodByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFoundError("Payment method not found").WithError(err)
	}

	if req.CardholderName != nil {
		method.CardholderName = *req.CardholderName
	}

	if req.Brand != nil {
		method.Brand = *req.Brand
	}

	if req.Last4 != nil {
		method.Last4 = *req.Last4
	}

	if req.ExpMonth != nil {
		method.ExpMonth = *req.ExpMonth
	}

	if req.ExpYear != nil {
		if err := validateExpYear(*req.ExpYear); err != nil {
			return nil, err
		}

		method.ExpYear = *req.ExpYear
	}

	if req.BillingPostal != nil {
		method.BillingPostal = *req.BillingPostal
	}

	if req.IsDefault != nil {
		method.IsDefault = *req.IsDefault
	}

	if err := s.repo.UpdatePaymentMethod(ctx, method); err != nil {
		return nil, errors.DatabaseError("Failed to update payment method").WithError(err)
	}

	return method, nil
}

func (s *PaymentMethodService) DeletePaymentMethod(ctx context.Context, userID uuid.UUID, id int64) error {

	if err := s.repo.DeletePaymentMethod(ctx, userID, id); err != nil {
		return errors.NotFoundError("Payment method not found").WithError(err)
	}

	return nil
}
