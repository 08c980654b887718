package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/R-umaria/boxedwithlove/internal/models"
	"github.com/R-umaria/boxedwithlove/internal/utils"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	ListReviewsByProduct(ctx context.Context, productID int64) ([]*models.Review, float64, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (user_id, product_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		review.UserID, review.ProductID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt)
}

func (r *reviewRepository) ListReviewsByProduct(ctx context.Context, productID int64) ([]*models.Review, float64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, product_id, rating, COALESCE(comment, ''), created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, 0, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review

	for rows.Next() {
		review := &models.Review{}
		if err := rows.Scan(&review.ID, &review.UserID, &review.ProductID,
			&review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning review: %w", err)
		}

		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	avgQuery := `
		SELECT COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE product_id = $1
	`

	var average float64

	if err := r.DB.QueryRowContext(dbCtx, avgQuery, productID).Scan(&average); err != nil {
		return nil, 0, fmt.Errorf("querying database: %w", err)
	}

	return reviews, average, nil
}
