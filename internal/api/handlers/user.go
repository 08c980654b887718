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

type UserHandler struct {
	userService *service.UserService
	cartService *service.CartService
	validator   *validator.Validate
}

func NewUserHandler(userService *service.UserService, cartService *service.CartService) *UserHandler {
	return &UserHandler{
		userService: userService,
		cartService: cartService,
		validator:   utils.NewValidator(),
	}
}

// Register creates the account and signs the visitor in right away. Any
// anonymous cart they built up follows them into the account.
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Warn("User registration failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		sess := middleware.SessionFromContext(r.Context())

		if err := h.cartService.MergeSessionCart(r.Context(), sess, user.ID); err != nil {
			logger.Error("Cart merge failed", slog.String("userId", user.ID.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		sess.UserID = &user.ID

		logger.Info("User registered", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusCreated, models.LoginResponse{ID: user.ID, Email: user.Email})

	}
}

// Login verifies credentials, merges the anonymous cart into the account
// cart, and only then binds the user to the session. A failed merge fails
// the login so no cart contents are silently lost.
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		sess := middleware.SessionFromContext(r.Context())

		if err := h.cartService.MergeSessionCart(r.Context(), sess, user.ID); err != nil {
			logger.Error("Cart merge failed", slog.String("userId", user.ID.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		sess.UserID = &user.ID

		logger.Info("User logged in", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusOK, models.LoginResponse{ID: user.ID, Email: user.Email})

	}
}

// Logout unbinds the user from the session. The session itself survives,
// so the visitor can keep browsing anonymously.
func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sess := middleware.SessionFromContext(r.Context())

		sess.UserID = nil
		sess.Shipping = nil
		sess.PaymentMethodID = nil

		response.Success(w, http.StatusOK, map[string]bool{"ok": true})

	}
}

func (h *UserHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Login required"))
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), userID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)

	}
}
