package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

type ReviewListResponse struct {
	Items         []*Review `json:"items"`
	AverageRating float64   `json:"average_rating"`
}
