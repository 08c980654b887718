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
)

// CartHandler works for both signed-in and anonymous visitors; the session
// in the request context decides which cart the service touches.
type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   utils.NewValidator(),
	}
}

func (h *CartHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		cart, err := h.cartService.View(r.Context(), sess)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sess := middleware.SessionFromContext(r.Context())

		cart, err := h.cartService.AddItem(r.Context(), sess, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Cart item added", slog.Int64("productId", req.ProductID), slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusCreated, cart)

	}
}

// UpdateQuantity handles PUT: the quantity is required and replaces the
// line's current value. Zero or below removes the line.
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		itemID := r.PathValue("itemId")

		var req models.UpdateQuantityRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sess := middleware.SessionFromContext(r.Context())

		cart, err := h.cartService.UpdateQuantity(r.Context(), sess, itemID, *req.Quantity)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

// PatchQuantity handles PATCH: a missing quantity leaves the line as is.
func (h *CartHandler) PatchQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		itemID := r.PathValue("itemId")

		var req models.PatchQuantityRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sess := middleware.SessionFromContext(r.Context())

		if req.Quantity == nil {
			// a no-op patch still 404s on an unknown line
			if err := h.cartService.CheckLine(r.Context(), sess, itemID); err != nil {
				response.Error(w, err)
				return
			}

			cart, err := h.cartService.View(r.Context(), sess)
			if err != nil {
				response.Error(w, err)
				return
			}

			response.Success(w, http.StatusOK, cart)

			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), sess, itemID, *req.Quantity)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		itemID := r.PathValue("itemId")
		if itemID == "" {
			response.Error(w, errors.ValidationError("Cart item id is required"))
			return
		}

		sess := middleware.SessionFromContext(r.Context())

		cart, err := h.cartService.RemoveItem(r.Context(), sess, itemID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}
