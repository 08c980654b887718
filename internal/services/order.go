package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/models"
	repository "github.com/R-umaria/boxedwithlove/internal/repositories"
	"github.com/google/uuid"
)

// OrderService turns carts into immutable order snapshots and walks the
// one-way placed -> cancelled status machine.
type OrderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	products repository.ProductRepository
	payments repository.PaymentMethodRepository
	cart     *CartService
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	payments repository.PaymentMethodRepository,
	cart *CartService,
) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		payments: payments,
		cart:     cart,
	}
}

// resolvePaymentMethod picks the card to charge: the explicit id when the
// caller sent one, else the default, else the newest card on file.
func (s *OrderService) resolvePaymentMethod(ctx context.Context, userID uuid.UUID, paymentMethodID *int64) (*models.PaymentMethod, error) {

	if paymentMethodID != nil {
		method, err := s.payments.GetPaymentMethodByID(ctx, userID, *paymentMethodID)
		if err != nil {
			return nil, errors.ValidationError("Invalid payment method for this account").WithError(err)
		}

		return method, nil
	}

	if method, err := s.payments.GetDefaultPaymentMethod(ctx, userID); err == nil {
		return method, nil
	}

	if method, err := s.payments.GetNewestPaymentMethod(ctx, userID); err == nil {
		return method, nil
	}

	return nil, errors.ValidationError("No payment methods on file")
}

// Checkout converts the account cart into an order: prices are snapshotted,
// stock is reserved, and the cart is cleared, all in one transaction. Any
// failed line aborts the whole attempt.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {

	method, err := s.resolvePaymentMethod(ctx, userID, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	items, err := s.carts.ListItems(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	if len(items) == 0 {
		return nil, errors.ValidationError("Cart is empty")
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart products").WithError(err)
	}

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		PaymentMethodID: &method.ID,
		Status:          models.OrderStatusPlaced,
	}

	var lines []models.CartLine

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, errors.ConflictError(fmt.Sprintf("Product %d is no longer available", item.ProductID))
		}

		if !product.IsAvailable {
			return nil, errors.ConflictError(fmt.Sprintf("Product %q is no longer available", product.Name))
		}

		if int64(item.Quantity) > product.Stock {
			return nil, errors.ConflictError(fmt.Sprintf("Insufficient stock for %q", product.Name))
		}

		order.Items = append(order.Items, models.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: product.PriceCents,
			LineTotalCents: product.PriceCents * int64(item.Quantity),
		})

		lines = append(lines, newCartLine("", product, item.Quantity))
	}

	order.TotalCents = s.cart.Summarize(lines).TotalCents

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		// the guard inside the transaction is authoritative; the check
		// above only catches the common case early
		if stderrors.Is(err, repository.ErrInsufficientStock) {
			return nil, errors.ConflictError("Insufficient stock").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	return &models.CheckoutResponse{
		Order:         order,
		PaymentMethod: method.Summary(),
	}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) (*models.OrderListResponse, error) {

	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load orders").WithError(err)
	}

	response := &models.OrderListResponse{Items: []models.Order{}}

	for _, order := range orders {
		response.Items = append(response.Items, *order)
	}

	return response, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {

	order, err := s.orders.GetOrderByID(ctx, userID, orderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	return order, nil
}

// CancelOrder is the only status transition. Orders leave placed exactly
// once; a second cancel, or any other target status, is a conflict.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {

	order, err := s.orders.GetOrderByID(ctx, userID, orderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if order.Status != models.OrderStatusPlaced {
		return nil, errors.ConflictError("Order cannot be cancelled in its current status")
	}

	if err := s.orders.UpdateStatus(ctx, userID, orderID, models.OrderStatusCancelled); err != nil {
		return nil, errors.DatabaseError("Failed to update order").WithError(err)
	}

	order.Status = models.OrderStatusCancelled

	return order, nil
}
