package service_test

import (
	"context"

	"github.com/R-umaria/boxedwithlove/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
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

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]*models.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status models.OrderStatus) error {
	args := m.Called(ctx, userID, orderID, status)
	return args.Error(0)
}

type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) GetPaymentMethodByID(ctx context.Context, userID uuid.UUID, id int64) (*models.PaymentMethod, error) {
	args := m.Called(ctx, userID, id)
	if method, ok := args.Get(0).(*models.PaymentMethod); ok {
		return method, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentMethodRepository) GetDefaultPaymentMethod(ctx context.Context, userID uuid.UUID) (*models.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	if method, ok := args.Get(0).(*models.PaymentMethod); ok {
		return method, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentMethodRepository) GetNewestPaymentMethod(ctx context.Context, userID uuid.UUID) (*models.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	if method, ok := args.Get(0).(*models.PaymentMethod); ok {
		return method, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentMethodRepository) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]*models.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	if methods, ok := args.Get(0).([]*models.PaymentMethod); ok {
		return methods, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) DeletePaymentMethod(ctx context.Context, userID uuid.UUID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListReviewsByProduct(ctx context.Context, productID int64) ([]*models.Review, float64, error) {
	args := m.Called(ctx, productID)
	if reviews, ok := args.Get(0).([]*models.Review); ok {
		return reviews, args.Get(1).(float64), args.Error(2)
	}

	return nil, args.Get(1).(float64), args.Error(2)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMessage string) error {
	args := m.Called(ctx, id, status, errorMessage)
	return args.Error(0)
}
