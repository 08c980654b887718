package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/R-umaria/boxedwithlove/internal/models"
	"github.com/R-umaria/boxedwithlove/internal/utils"
	"github.com/google/uuid"
)

// ErrInsufficientStock is returned by CreateOrder when a product ran out of
// stock between cart validation and the reservation inside the transaction.
var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status models.OrderStatus) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder persists the order and its items, reserves stock, and empties
// the user's cart in one transaction. A failed stock reservation rolls the
// whole order back.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, user_id, payment_method_id, status, total_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err = tx.QueryRowContext(dbCtx, orderQuery,
		order.ID, order.UserID, order.PaymentMethodID, order.Status, order.TotalCents).
		Scan(&order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price_cents)
		VALUES ($1, $2, $3, $4, $5)
	`

	// The stock guard in the WHERE clause makes the decrement atomic: zero
	// affected rows means another checkout won the remaining stock.
	stockQuery := `
		UPDATE products
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
	`

	for _, item := range order.Items {
		if _, err := tx.ExecContext(dbCtx, itemQuery,
			item.ID, order.ID, item.ProductID, item.Quantity, item.UnitPriceCents); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}

		result, err := tx.ExecContext(dbCtx, stockQuery, item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to reserve stock: %w", err)
		}

		updatedRows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get updated rows: %w", err)
		}

		if updatedRows == 0 {
			return fmt.Errorf("product %d: %w", item.ProductID, ErrInsufficientStock)
		}
	}

	clearQuery := `
		DELETE FROM cart_items
		WHERE user_id = $1
	`

	if _, err := tx.ExecContext(dbCtx, clearQuery, order.UserID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, payment_method_id, status, total_cents, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`

	order := &models.Order{}

	err := r.DB.QueryRowContext(dbCtx, query, orderID, userID).
		Scan(&order.ID, &order.UserID, &order.PaymentMethodID, &order.Status, &order.TotalCents, &order.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	items, err := r.listOrderItems(dbCtx, orderID)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) listOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.unit_price_cents
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.product_id ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}

		item.LineTotalCents = item.UnitPriceCents * int64(item.Quantity)

		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, payment_method_id, status, total_cents, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order

	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.PaymentMethodID,
			&order.Status, &order.TotalCents, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.listOrderItems(dbCtx, order.ID)
		if err != nil {
			return nil, err
		}

		order.Items = items
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2 AND user_id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, orderID, userID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
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
