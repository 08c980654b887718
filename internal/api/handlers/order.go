package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/R-umaria/boxedwithlove/internal/api/middleware"
	"github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/models"
	service "github.com/R-umaria/boxedwithlove/internal/services"
	"github.com/R-umaria/boxedwithlove/internal/utils"
	"github.com/R-umaria/boxedwithlove/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService        *service.OrderService
	userService         *service.UserService
	notificationService *service.NotificationService
	validator           *validator.Validate
}

func NewOrderHandler(orderService *service.OrderService, userService *service.UserService, notificationService *service.NotificationService) *OrderHandler {
	return &OrderHandler{
		orderService:        orderService,
		userService:         userService,
		notificationService: notificationService,
		validator:           utils.NewValidator(),
	}
}

// Create places the order. The payment method comes from the request body,
// falling back to the one picked in the checkout wizard, then to the
// account default, then to the newest card on file.
func (h *OrderHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		sess := middleware.SessionFromContext(r.Context())

		req := models.CheckoutRequest{}

		// body is optional; an empty request means "use my defaults"
		if r.ContentLength > 0 {
			if !utils.ParseAndValidate(r, w, &req, h.validator) {
				return
			}
		}

		if req.PaymentMethodID == nil {
			req.PaymentMethodID = sess.PaymentMethodID
		}

		resp, err := h.orderService.Checkout(r.Context(), userID, &req)
		if err != nil {
			logger.Warn("Checkout failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		// the wizard state is spent once the order exists
		sess.Shipping = nil
		sess.PaymentMethodID = nil

		logger.Info("Order placed",
			slog.String("orderId", resp.Order.ID.String()),
			slog.Int64("totalCents", resp.Order.TotalCents))

		h.sendConfirmation(logger, userID, resp.Order)

		response.Success(w, http.StatusCreated, resp)

	}
}

// sendConfirmation emails the receipt off the request path; a slow or
// failing mail provider never delays the checkout response.
func (h *OrderHandler) sendConfirmation(logger *slog.Logger, userID uuid.UUID, order *models.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := h.userService.GetUserByID(ctx, userID)
		if err != nil {
			logger.Error("Failed to load user for confirmation email", slog.String("error", err.Error()))
			return
		}

		h.notificationService.SendOrderConfirmation(ctx, user, order)
	}()
}

func (h *OrderHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		resp, err := h.orderService.ListOrders(r.Context(), userID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)

	}
}

func (h *OrderHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), userID, orderID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)

	}
}

// UpdateStatus handles PATCH; cancelling is the only accepted transition.
func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.CancelOrder(r.Context(), userID, orderID)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Order cancelled", slog.String("orderId", orderID.String()))
		response.Success(w, http.StatusOK, order)

	}
}

// Delete soft-cancels; orders are never removed from history.
func (h *OrderHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		if _, err := h.orderService.CancelOrder(r.Context(), userID, orderID); err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Order cancelled", slog.String("orderId", orderID.String()))
		response.NoContent(w)

	}
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ValidationError("Invalid order id")
	}

	return id, nil
}
