package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/R-umaria/boxedwithlove/internal/models"
	"github.com/R-umaria/boxedwithlove/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	AddItem(ctx context.Context, userID uuid.UUID, productID int64, quantity int) (*models.CartItem, error)
	GetItem(ctx context.Context, userID uuid.UUID, itemID int64) (*models.CartItem, error)
	ListItems(ctx context.Context, userID uuid.UUID) ([]*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID int64) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// AddItem inserts a cart line, or increments the quantity if the user
// already has the product in their cart.
func (r *cartRepository) AddItem(ctx context.Context, userID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT uq_cart_user_product
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, user_id, product_id, quantity
	`

	item := &models.CartItem{}

	err := r.DB.QueryRowContext(dbCtx, query, userID, productID, quantity).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) GetItem(ctx context.Context, userID uuid.UUID, itemID int64) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, product_id, quantity
		FROM cart_items
		WHERE id = $1 AND user_id = $2
	`

	item := &models.CartItem{}

	err := r.DB.QueryRowContext(dbCtx, query, itemID, userID).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return item, nil
}

func (r *cartRepository) ListItems(ctx context.Context, userID uuid.UUID) ([]*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, product_id, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var items []*models.CartItem

	for rows.Next() {
		item := &models.CartItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scanning cart item: %w", err)
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID int64, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_items
		SET quantity = $1
		WHERE id = $2 AND user_id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID uuid.UUID, itemID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM cart_items
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *cartRepository) ClearCart(ctx context.Context, userID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM cart_items
		WHERE user_id = $1
	`

	if _, err := r.DB.ExecContext(dbCtx, query, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
