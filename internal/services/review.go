package service

import (
	"context"
	"strings"

	"github.com/R-umaria/boxedwithlove/internal/errors"
	"github.com/R-umaria/boxedwithlove/internal/models"
	repository "github.com/R-umaria/boxedwithlove/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// ReviewService stores product reviews. Comments are free text from
// customers, so they pass through an HTML sanitizer before hitting storage.
type ReviewService struct {
	reviews   repository.ReviewRepository
	products  repository.ProductRepository
	sanitizer *bluemonday.Policy
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviews:   reviews,
		products:  products,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, productID int64, req *models.CreateReviewRequest) (*models.Review, error) {

	if _, err := s.products.GetProductByID(ctx, productID); err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(s.sanitizer.Sanitize(req.Comment)),
	}

	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, errors.DatabaseError("Failed to save review").WithError(err)
	}

	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID int64) (*models.ReviewListResponse, error) {

	if _, err := s.products.GetProductByID(ctx, productID); err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	reviews, average, err := s.reviews.ListReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load reviews").WithError(err)
	}

	if reviews == nil {
		reviews = []*models.Review{}
	}

	return &models.ReviewListResponse{
		Items:         reviews,
		AverageRating: average,
	}, nil
}
