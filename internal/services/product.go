package service

import (
	"context"

	"github.com/R-umaria/boxedwithlove/internal/config"
	"github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/models"
	repository "github.com/R-umaria/boxedwithlove/internal/repositories"
)

type ProductService struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	catalog  *config.Catalog
}

func NewProductService(products repository.ProductRepository, reviews repository.ReviewRepository, catalog *config.Catalog) *ProductService {
	return &ProductService{
		products: products,
		reviews:  reviews,
		catalog:  catalog,
	}
}

// ListProducts clamps paging to the configured bounds before hitting the
// repository, so callers can never page the whole catalog in one request.
func (s *ProductService) ListProducts(ctx context.Context, params *models.ProductListParams) (*models.ProductListResponse, error) {

	if params.Limit <= 0 {
		params.Limit = s.catalog.DefaultLimit
	}

	if params.Limit > s.catalog.MaxLimit {
		params.Limit = s.catalog.MaxLimit
	}

	if params.Offset < 0 {
		params.Offset = 0
	}

	products, total, err := s.products.ListProducts(ctx, params)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load products").WithError(err)
	}

	if products == nil {
		products = []*models.Product{}
	}

	return &models.ProductListResponse{
		Items: products,
		Paging: models.Paging{
			Limit:  params.Limit,
			Offset: params.Offset,
			Total:  total,
		},
	}, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.ProductDetailResponse, error) {

	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	// hidden products are indistinguishable from missing ones
	if !product.IsAvailable {
		return nil, errors.NotFoundError("Product not found")
	}

	reviews, average, err := s.reviews.ListReviewsByProduct(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load reviews").WithError(err)
	}

	if reviews == nil {
		reviews = []*models.Review{}
	}

	return &models.ProductDetailResponse{
		Product:       product,
		Reviews:       reviews,
		AverageRating: average,
	}, nil
}

func (s *ProductService) ListCategories(ctx context.Context) ([]*models.Category, error) {

	categories, err := s.products.ListCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load categories").WithError(err)
	}

	if categories == nil {
		categories = []*models.Category{}
	}

	return categories, nil
}
