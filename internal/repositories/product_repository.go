package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/R-umaria/boxedwithlove/internal/models"
	"github.com/R-umaria/boxedwithlove/internal/utils"
	"github.com/lib/pq"
)

type ProductRepository interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Product, error)
	ListProducts(ctx context.Context, params *models.ProductListParams) ([]*models.Product, int64, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `
	p.id, p.sku, p.name, p.description, p.price_cents, p.stock, p.is_available,
	COALESCE(p.image_url, ''), p.created_at,
	c.id, c.name
`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	product := &models.Product{}

	var categoryID sql.NullInt64

	var categoryName sql.NullString

	err := row.Scan(
		&product.ID, &product.SKU, &product.Name, &product.Description,
		&product.PriceCents, &product.Stock, &product.IsAvailable,
		&product.ImageURL, &product.CreatedAt,
		&categoryID, &categoryName,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		product.Category = &models.Category{ID: categoryID.Int64, Name: categoryName.String}
	}

	return product, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if len(ids) == 0 {
		return map[int64]*models.Product{}, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = ANY($1)
	`

	rows, err := r.DB.QueryContext(dbCtx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	products := make(map[int64]*models.Product, len(ids))

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products[product.ID] = product
	}

	return products, rows.Err()
}

// sortClauses maps the accepted sort keys to ORDER BY clauses. Unknown keys
// fall back to the default ordering.
var sortClauses = map[string]string{
	models.SortDefault:   "p.id ASC",
	models.SortPriceAsc:  "p.price_cents ASC, p.id ASC",
	models.SortPriceDesc: "p.price_cents DESC, p.id ASC",
	models.SortNewest:    "p.created_at DESC, p.id DESC",
}

func (r *productRepository) ListProducts(ctx context.Context, params *models.ProductListParams) ([]*models.Product, int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	conditions := []string{"p.is_available = TRUE"}
	args := []any{}

	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		idx := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d OR p.sku ILIKE $%d)", idx, idx, idx))
	}

	if params.Category != "" {
		args = append(args, params.Category)
		conditions = append(conditions, fmt.Sprintf("c.name = $%d", len(args)))
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64

	countQuery := `
		SELECT COUNT(*)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
	` + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	orderBy, ok := sortClauses[params.Sort]
	if !ok {
		orderBy = sortClauses[models.SortDefault]
	}

	args = append(args, params.Limit, params.Offset)

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, productColumns, where, orderBy, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, product)
	}

	return products, total, rows.Err()
}

func (r *productRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, COALESCE(description, '')
		FROM categories
		ORDER BY name ASC
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category

	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, category)
	}

	return categories, rows.Err()
}
