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
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Product, error) {
	args := m.Called(ctx, ids)
	if products, ok := args.Get(0).(map[int64]*models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, params *models.ProductListParams) ([]*models.Product, int64, error) {
	args := m.Called(ctx, params)
	if products, ok := args.Get(0).([]*models.Product); ok {
		return products, args.Get(1).(int64), args.Error(2)
	}

	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]*models.Category); ok {
		return categories, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) AddItem(ctx context.Context, userID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if item, ok := args.Get(0).(*models.CartItem); ok {
		return item, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) GetItem(ctx context.Context, userID uuid.UUID, itemID int64) (*models.CartItem, error) {
	args := m.Called(ctx, userID, itemID)
	if item, ok := args.Get(0).(*models.CartItem); ok {
		return item, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) ListItems(ctx context.Context, userID uuid.UUID) ([]*models.CartItem, error) {
	args := m.Called(ctx, userID)
	if items, ok := args.Get(0).([]*models.CartItem); ok {
		return items, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID int64, quantity int) error {
	args := m.Called(ctx, userID, itemID, quantity)

	return args.Error(0)
}

func (m *MockCartRepository) RemoveItem(ctx context.Context, userID uuid.UUID, itemID int64) error {
	args := m.Called(ctx, userID, itemID)

	return args.Error(0)
}

func (m *MockCartRepository) ClearCart(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func setupCartTest() (*MockCartRepository, *MockProductRepository, *handlers.CartHandler) {
	mockCarts := new(MockCartRepository)
	mockProducts := new(MockProductRepository)

	cartService := service.NewCartService(mockCarts, mockProducts, &config.Checkout{TaxRateBP: 1300, ShippingCents: 0})

	return mockCarts, mockProducts, handlers.NewCartHandler(cartService)
}

func TestAddItem(t *testing.T) {
	t.Run("Success - Anonymous Visitor", func(t *testing.T) {
		// Arrange
		_, mockProducts, cartHandler := setupCartTest()

		product := &models.Product{ID: 7, Name: "Care Package", PriceCents: 4999, Stock: 10, IsAvailable: true}
		mockProducts.On("GetProductByID", mock.Anything, int64(7)).Return(product, nil).Once()
		mockProducts.On("GetProductsByIDs", mock.Anything, []int64{7}).
			Return(map[int64]*models.Product{7: product}, nil).Once()

		body, _ := json.Marshal(models.AddItemRequest{ProductID: 7, Quantity: 2})
		req, sess := testutils.CreateTestRequestAnonymous("POST", "/api/v1/cart/items", bytes.NewBuffer(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Equal(t, 2, sess.CartQuantity(7), "Anonymous cart lives in the session")

		var cart models.CartView
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cart))
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "session_7", cart.Items[0].ID)
		assert.Equal(t, int64(9998), cart.Summary.SubtotalCents)

		mockProducts.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		_, mockProducts, cartHandler := setupCartTest()

		mockProducts.On("GetProductByID", mock.Anything, int64(99)).Return(nil, assert.AnError).Once()

		body, _ := json.Marshal(models.AddItemRequest{ProductID: 99, Quantity: 1})
		req, _ := testutils.CreateTestRequestAnonymous("POST", "/api/v1/cart/items", bytes.NewBuffer(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var envelope response.ErrorEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "not_found", envelope.Error.Code)
	})

	t.Run("Failure - Missing Quantity", func(t *testing.T) {
		// Arrange
		_, mockProducts, cartHandler := setupCartTest()

		req, _ := testutils.CreateTestRequestAnonymous("POST", "/api/v1/cart/items",
			bytes.NewBufferString(`{"product_id": 7}`), nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var envelope response.ErrorEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "validation_error", envelope.Error.Code)
		assert.NotEmpty(t, envelope.Error.Details)

		mockProducts.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})
}

func TestPatchQuantity(t *testing.T) {
	t.Run("No Quantity - Existing Line Returns The View", func(t *testing.T) {
		// Arrange
		_, mockProducts, cartHandler := setupCartTest()

		product := &models.Product{ID: 7, Name: "Care Package", PriceCents: 4999, Stock: 10, IsAvailable: true}
		mockProducts.On("GetProductsByIDs", mock.Anything, []int64{7}).
			Return(map[int64]*models.Product{7: product}, nil).Once()

		req, sess := testutils.CreateTestRequestAnonymous("PATCH", "/api/v1/cart/items/session_7",
			bytes.NewBufferString(`{}`), map[string]string{"itemId": "session_7"})
		sess.Cart = map[string]int{"7": 2}
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.PatchQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var cart models.CartView
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cart))
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity, "A quantity-less patch leaves the line alone")
	})

	t.Run("No Quantity - Unknown Line Is Still Not Found", func(t *testing.T) {
		// Arrange
		_, _, cartHandler := setupCartTest()

		req, _ := testutils.CreateTestRequestAnonymous("PATCH", "/api/v1/cart/items/session_99",
			bytes.NewBufferString(`{}`), map[string]string{"itemId": "session_99"})
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.PatchQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var envelope response.ErrorEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "not_found", envelope.Error.Code)
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("Success - Account Line", func(t *testing.T) {
		// Arrange
		mockCarts, mockProducts, cartHandler := setupCartTest()
		userID := uuid.New()

		mockCarts.On("RemoveItem", mock.Anything, userID, int64(41)).Return(nil).Once()
		mockCarts.On("ListItems", mock.Anything, userID).Return([]*models.CartItem{}, nil).Once()
		mockProducts.On("GetProductsByIDs", mock.Anything, []int64{}).
			Return(map[int64]*models.Product{}, nil).Once()

		req, _ := testutils.CreateTestRequestWithUser("DELETE", "/api/v1/cart/items/41", nil,
			userID, map[string]string{"itemId": "41"})
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.RemoveItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var cart models.CartView
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cart))
		assert.Empty(t, cart.Items)
		assert.Equal(t, int64(0), cart.Summary.TotalCents)

		mockCarts.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Session Line", func(t *testing.T) {
		// Arrange
		_, _, cartHandler := setupCartTest()

		req, _ := testutils.CreateTestRequestAnonymous("DELETE", "/api/v1/cart/items/session_99", nil,
			map[string]string{"itemId": "session_99"})
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.RemoveItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var envelope response.ErrorEnvelope
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "not_found", envelope.Error.Code)
	})
}
