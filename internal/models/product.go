package models

import "time"

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int64     `json:"stock"`
	IsAvailable bool      `json:"is_available"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Category    *Category `json:"category,omitempty"`
}

// Sort keys accepted by the catalog listing. The zero value keeps
// insertion order, which doubles as the "popular" ordering.
const (
	SortDefault   = ""
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

type ProductListParams struct {
	Search   string
	Category string
	Sort     string
	Limit    int
	Offset   int
}

type ProductListResponse struct {
	Items  []*Product `json:"items"`
	Paging Paging     `json:"paging"`
}

type ProductDetailResponse struct {
	Product       *Product  `json:"product"`
	Reviews       []*Review `json:"reviews"`
	AverageRating float64   `json:"average_rating"`
}
