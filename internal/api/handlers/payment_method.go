package handlers

import (
	"log/slog"
	"net/http"

	"github.com/R-umaria/boxedwithlove/internal/api/middleware"
	"github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/models"
	service "github.com/R-umaria/boxedwithlove/internal/services"
	"github.com/R-umaria/boxedwithlove/internal/utils"
	"github.com/R-umaria/boxedwithlove/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PaymentMethodHandler struct {
	paymentService *service.PaymentMethodService
	validator      *validator.Validate
}

func NewPaymentMethodHandler(paymentService *service.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		paymentService: paymentService,
		validator:      utils.NewValidator(),
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errors.UnauthorizedError("Login required"))
	}

	return userID, ok
}

func (h *PaymentMethodHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		resp, err := h.paymentService.ListPaymentMethods(r.Context(), userID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)

	}
}

func (h *PaymentMethodHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req models.CreatePaymentMethodRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		method, err := h.paymentService.CreatePaymentMethod(r.Context(), userID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Payment method created", slog.Int64("paymentMethodId", method.ID))
		response.Success(w, http.StatusCreated, method)

	}
}

// Replace handles PUT: the full payload is required and overwrites the card.
func (h *PaymentMethodHandler) Replace() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseInt64Path(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.CreatePaymentMethodRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		method, err := h.paymentService.ReplacePaymentMethod(r.Context(), userID, id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, method)

	}
}

// Update handles PATCH: only the fields present in the payload change.
func (h *PaymentMethodHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseInt64Path(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdatePaymentMethodRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		method, err := h.paymentService.UpdatePaymentMethod(r.Context(), userID, id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, method)

	}
}

func (h *PaymentMethodHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseInt64Path(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.paymentService.DeletePaymentMethod(r.Context(), userID, id); err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Payment method deleted", slog.Int64("paymentMethodId", id))
		response.NoContent(w)

	}
}
