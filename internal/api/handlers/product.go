package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/R-umaria/boxedwithlove/internal/api/middleware"
	"github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/models"
	service "github.com/R-umaria/boxedwithlove/internal/services"
	"github.com/R-umaria/boxedwithlove/internal/utils"
	"github.com/R-umaria/boxedwithlove/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService *service.ProductService
	reviewService  *service.ReviewService
	validator      *validator.Validate
}

func NewProductHandler(productService *service.ProductService, reviewService *service.ReviewService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		reviewService:  reviewService,
		validator:      utils.NewValidator(),
	}
}

// List serves the catalog. Query params: search, category, sort
// (price_asc|price_desc|newest), limit, offset.
func (h *ProductHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := r.URL.Query()

		params := &models.ProductListParams{
			Search:   query.Get("search"),
			Category: query.Get("category"),
			Sort:     query.Get("sort"),
		}

		if raw := query.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				response.Error(w, errors.ValidationError("limit must be an integer"))
				return
			}

			params.Limit = limit
		}

		if raw := query.Get("offset"); raw != "" {
			offset, err := strconv.Atoi(raw)
			if err != nil {
				response.Error(w, errors.ValidationError("offset must be an integer"))
				return
			}

			params.Offset = offset
		}

		resp, err := h.productService.ListProducts(r.Context(), params)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)

	}
}

func (h *ProductHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseInt64Path(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		resp, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)

	}
}

func (h *ProductHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.productService.ListCategories(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{"items": categories})

	}
}

func (h *ProductHandler) ListReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseInt64Path(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		resp, err := h.reviewService.ListReviews(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)

	}
}

// CreateReview stores a review from a signed-in customer.
func (h *ProductHandler) CreateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Login required"))
			return
		}

		id, err := utils.ParseInt64Path(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.CreateReviewRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		review, err := h.reviewService.CreateReview(r.Context(), userID, id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Review created", slog.Int64("productId", id), slog.Int64("reviewId", review.ID))
		response.Success(w, http.StatusCreated, review)

	}
}
