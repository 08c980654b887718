package handlers

import (
	"net/http"

	"github.com/R-umaria/boxedwithlove/internal/api/middleware"
	"github.com/R-umaria/boxedwithlove/internal/models"
	service "github.com/R-umaria/boxedwithlove/internal/services"
	"github.com/R-umaria/boxedwithlove/internal/utils"
	"github.com/R-umaria/boxedwithlove/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// CheckoutHandler drives the pre-order wizard. Shipping details and the
// picked payment method live in the session until the order is placed;
// nothing here writes to postgres.
type CheckoutHandler struct {
	cartService    *service.CartService
	paymentService *service.PaymentMethodService
	validator      *validator.Validate
}

func NewCheckoutHandler(cartService *service.CartService, paymentService *service.PaymentMethodService) *CheckoutHandler {
	return &CheckoutHandler{
		cartService:    cartService,
		paymentService: paymentService,
		validator:      utils.NewValidator(),
	}
}

// Get returns the review step: the live cart plus whatever the wizard has
// collected so far.
func (h *CheckoutHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := requireUser(w, r); !ok {
			return
		}

		sess := middleware.SessionFromContext(r.Context())

		cart, err := h.cartService.View(r.Context(), sess)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.CheckoutState{
			Cart:            cart,
			Shipping:        sess.Shipping,
			PaymentMethodID: sess.PaymentMethodID,
		})

	}
}

func (h *CheckoutHandler) SetShipping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := requireUser(w, r); !ok {
			return
		}

		var req models.ShippingDetails

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		sess.Shipping = &req

		response.Success(w, http.StatusOK, map[string]bool{"ok": true})

	}
}

// SelectPayment pins a card for the upcoming order. Ownership is checked
// here so the stored id is always chargeable at order time.
func (h *CheckoutHandler) SelectPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req models.SelectPaymentRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if _, err := h.paymentService.GetPaymentMethod(r.Context(), userID, req.PaymentMethodID); err != nil {
			response.Error(w, err)
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		sess.PaymentMethodID = &req.PaymentMethodID

		response.Success(w, http.StatusOK, map[string]bool{"ok": true})

	}
}
