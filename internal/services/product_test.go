package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/R-umaria/boxedwithlove/internal/config"
	appErrors "github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/models"
	service "github.com/R-umaria/boxedwithlove/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testCatalogConfig() *config.Catalog {
	return &config.Catalog{DefaultLimit: 12, MaxLimit: 50}
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Zero Limit Falls Back To Default", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		productService := service.NewProductService(mockProducts, new(MockReviewRepository), testCatalogConfig())

		mockProducts.On("ListProducts", ctx, mock.MatchedBy(func(params *models.ProductListParams) bool {
			return params.Limit == 12 && params.Offset == 0
		})).Return([]*models.Product{}, int64(0), nil).Once()

		resp, err := productService.ListProducts(ctx, &models.ProductListParams{Limit: 0, Offset: -3})

		assert.NoError(t, err)
		assert.Equal(t, 12, resp.Paging.Limit)
		assert.Equal(t, 0, resp.Paging.Offset)
		mockProducts.AssertExpectations(t)
	})

	t.Run("Oversized Limit Is Capped", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		productService := service.NewProductService(mockProducts, new(MockReviewRepository), testCatalogConfig())

		mockProducts.On("ListProducts", ctx, mock.MatchedBy(func(params *models.ProductListParams) bool {
			return params.Limit == 50
		})).Return([]*models.Product{}, int64(120), nil).Once()

		resp, err := productService.ListProducts(ctx, &models.ProductListParams{Limit: 500})

		assert.NoError(t, err)
		assert.Equal(t, 50, resp.Paging.Limit)
		assert.Equal(t, int64(120), resp.Paging.Total)
	})

	t.Run("Nil Rows Become Empty Items", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		productService := service.NewProductService(mockProducts, new(MockReviewRepository), testCatalogConfig())

		mockProducts.On("ListProducts", ctx, mock.Anything).Return(nil, int64(0), nil).Once()

		resp, err := productService.ListProducts(ctx, &models.ProductListParams{Limit: 12})

		assert.NoError(t, err)
		assert.NotNil(t, resp.Items)
		assert.Len(t, resp.Items, 0)
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Detail With Reviews", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockReviews := new(MockReviewRepository)
		productService := service.NewProductService(mockProducts, mockReviews, testCatalogConfig())

		mockProducts.On("GetProductByID", ctx, int64(7)).
			Return(&models.Product{ID: 7, Name: "Care Package", PriceCents: 4999, IsAvailable: true}, nil).Once()
		mockReviews.On("ListReviewsByProduct", ctx, int64(7)).
			Return([]*models.Review{{ID: 1, ProductID: 7, Rating: 4}}, 4.0, nil).Once()

		resp, err := productService.GetProduct(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, "Care Package", resp.Product.Name)
		assert.Len(t, resp.Reviews, 1)
		assert.Equal(t, 4.0, resp.AverageRating)
	})

	t.Run("Unavailable Product Is Hidden", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockReviews := new(MockReviewRepository)
		productService := service.NewProductService(mockProducts, mockReviews, testCatalogConfig())

		mockProducts.On("GetProductByID", ctx, int64(8)).
			Return(&models.Product{ID: 8, Name: "Retired Box", IsAvailable: false}, nil).Once()

		resp, err := productService.GetProduct(ctx, 8)

		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockReviews.AssertNotCalled(t, "ListReviewsByProduct", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Product", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		productService := service.NewProductService(mockProducts, new(MockReviewRepository), testCatalogConfig())

		mockProducts.On("GetProductByID", ctx, int64(99)).Return(nil, sql.ErrNoRows).Once()

		resp, err := productService.GetProduct(ctx, 99)

		assert.Nil(t, resp)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
