package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/R-umaria/boxedwithlove/internal/api/handlers"
	"github.com/R-umaria/boxedwithlove/internal/config"
	"github.com/R-umaria/boxedwithlove/internal/models"
	service "github.com/R-umaria/boxedwithlove/internal/services"
	"github.com/R-umaria/boxedwithlove/internal/testutils"
	"github.com/R-umaria/boxedwithlove/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type userTestMocks struct {
	users    *MockUserRepository
	carts    *MockCartRepository
	products *MockProductRepository
}

func setupUserTest() (*userTestMocks, *handlers.UserHandler) {
	m := &userTestMocks{
		users:    new(MockUserRepository),
		carts:    new(MockCartRepository),
		products: new(MockProductRepository),
	}

	limiter := new(MockRateLimiter)
	limiter.On("CheckLoginRateLimit", mock.Anything, mock.Anything).Return(true, 0, 0, nil)

	userService := service.NewUserService(m.users, limiter)
	cartService := service.NewCartService(m.carts, m.products, &config.Checkout{TaxRateBP: 1300})

	return m, handlers.NewUserHandler(userService, cartService)
}

func TestRegister(t *testing.T) {
	t.Run("Failure - Malformed Email", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest()

		body, _ := json.Marshal(models.RegisterRequest{
			Name:     "Jess",
			Email:    "not-an-email",
			Password: "Str0ng!pass",
		})
		req, sess := testutils.CreateTestRequestAnonymous("POST", "/api/v1/auth/register", bytes.NewBuffer(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Register()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Nil(t, sess.UserID, "A rejected registration must not sign anyone in")

		var envelope response.ErrorEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "validation_error", envelope.Error.Code)
		assert.NotEmpty(t, envelope.Error.Details)

		m.users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
		m.users.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Str0ng!pass"), bcrypt.MinCost)
	userID := uuid.New()
	storedUser := &models.User{ID: userID, Email: "jess@example.com", Password: string(hashed)}

	t.Run("Success - Session Cart Merges Before Binding", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest()

		m.users.On("GetUserByEmail", mock.Anything, "jess@example.com").Return(storedUser, nil).Once()
		m.products.On("GetProductByID", mock.Anything, int64(7)).
			Return(&models.Product{ID: 7, IsAvailable: true}, nil).Once()
		m.carts.On("AddItem", mock.Anything, userID, int64(7), 2).
			Return(&models.CartItem{ID: 41, UserID: userID, ProductID: 7, Quantity: 2}, nil).Once()

		body, _ := json.Marshal(models.LoginRequest{Email: "jess@example.com", Password: "Str0ng!pass"})
		req, sess := testutils.CreateTestRequestAnonymous("POST", "/api/v1/auth/login", bytes.NewBuffer(body), nil)
		sess.Cart = map[string]int{"7": 2}
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Login()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, sess.UserID, "Login should bind the user to the session")
		assert.Equal(t, userID, *sess.UserID)
		assert.Empty(t, sess.Cart, "Merged session cart should be cleared")

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.ID)

		m.carts.AssertExpectations(t)
	})

	t.Run("Failure - Merge Error Fails The Login", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest()

		m.users.On("GetUserByEmail", mock.Anything, "jess@example.com").Return(storedUser, nil).Once()
		m.products.On("GetProductByID", mock.Anything, int64(7)).
			Return(&models.Product{ID: 7, IsAvailable: true}, nil).Once()
		m.carts.On("AddItem", mock.Anything, userID, int64(7), 2).
			Return(nil, assert.AnError).Once()

		body, _ := json.Marshal(models.LoginRequest{Email: "jess@example.com", Password: "Str0ng!pass"})
		req, sess := testutils.CreateTestRequestAnonymous("POST", "/api/v1/auth/login", bytes.NewBuffer(body), nil)
		sess.Cart = map[string]int{"7": 2}
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Login()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Nil(t, sess.UserID, "A failed merge must leave the session anonymous")
	})

	t.Run("Failure - Bad Credentials", func(t *testing.T) {
		// Arrange
		m, userHandler := setupUserTest()

		m.users.On("GetUserByEmail", mock.Anything, "jess@example.com").Return(storedUser, nil).Once()

		body, _ := json.Marshal(models.LoginRequest{Email: "jess@example.com", Password: "wrong"})
		req, sess := testutils.CreateTestRequestAnonymous("POST", "/api/v1/auth/login", bytes.NewBuffer(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Login()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Nil(t, sess.UserID)

		var envelope response.ErrorEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "unauthorized", envelope.Error.Code)
		assert.Equal(t, "Invalid email or password", envelope.Error.Message)
	})
}

func TestLogout(t *testing.T) {
	t.Run("Session Survives But The User Is Unbound", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest()
		userID := uuid.New()
		paymentMethodID := int64(3)

		req, sess := testutils.CreateTestRequestWithUser("POST", "/api/v1/auth/logout", nil, userID, nil)
		sess.Shipping = &models.ShippingDetails{FirstName: "Jess"}
		sess.PaymentMethodID = &paymentMethodID
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Logout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Nil(t, sess.UserID)
		assert.Nil(t, sess.Shipping, "Checkout progress should not survive a logout")
		assert.Nil(t, sess.PaymentMethodID)
	})
}
