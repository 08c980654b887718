package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/R-umaria/boxedwithlove/internal/models"
	"github.com/R-umaria/boxedwithlove/internal/utils"
	"github.com/google/uuid"
)

type PaymentMethodRepository interface {
	CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error
	GetPaymentMethodByID(ctx context.Context, userID uuid.UUID, id int64) (*models.PaymentMethod, error)
	GetDefaultPaymentMethod(ctx context.Context, userID uuid.UUID) (*models.PaymentMethod, error)
	GetNewestPaymentMethod(ctx context.Context, userID uuid.UUID) (*models.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]*models.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error
	DeletePaymentMethod(ctx context.Context, userID uuid.UUID, id int64) error
}

type paymentMethodRepository struct {
	DB *sql.DB
}

func NewPaymentMethodRepo(db *sql.DB) PaymentMethodRepository {
	return &paymentMethodRepository{DB: db}
}

const paymentMethodColumns = `
	id, user_id, cardholder_name, brand, last4, exp_month, exp_year,
	COALESCE(billing_postal, ''), is_default, created_at
`

func scanPaymentMethod(row interface{ Scan(...any) error }) (*models.PaymentMethod, error) {
	method := &models.PaymentMethod{}

	err := row.Scan(
		&method.ID, &method.UserID, &method.CardholderName, &method.Brand,
		&method.Last4, &method.ExpMonth, &method.ExpYear,
		&method.BillingPostal, &method.IsDefault, &method.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return method, nil
}

// CreatePaymentMethod inserts a card. The first card a user stores becomes
// the default regardless of the flag; when a later card is inserted as the
// default, the previous default is cleared in the same transaction.
func (r *paymentMethodRepository) CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int64

	countQuery := `
		SELECT COUNT(*)
		FROM payment_methods
		WHERE user_id = $1
	`

	if err := tx.QueryRowContext(dbCtx, countQuery, method.UserID).Scan(&existing); err != nil {
		return fmt.Errorf("counting payment methods: %w", err)
	}

	if existing == 0 {
		method.IsDefault = true
	}

	if method.IsDefault {
		unsetQuery := `
			UPDATE payment_methods
			SET is_default = FALSE
			WHERE user_id = $1 AND is_default = TRUE
		`

		if _, err := tx.ExecContext(dbCtx, unsetQuery, method.UserID); err != nil {
			return fmt.Errorf("failed to clear default flag: %w", err)
		}
	}

	insertQuery := `
		INSERT INTO payment_methods
			(user_id, cardholder_name, brand, last4, exp_month, exp_year, billing_postal, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(dbCtx, insertQuery,
		method.UserID, method.CardholderName, method.Brand, method.Last4,
		method.ExpMonth, method.ExpYear, method.BillingPostal, method.IsDefault).
		Scan(&method.ID, &method.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment method: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *paymentMethodRepository) GetPaymentMethodByID(ctx context.Context, userID uuid.UUID, id int64) (*models.PaymentMethod, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE id = $1 AND user_id = $2
	`

	method, err := scanPaymentMethod(r.DB.QueryRowContext(dbCtx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return method, nil
}

func (r *paymentMethodRepository) GetDefaultPaymentMethod(ctx context.Context, userID uuid.UUID) (*models.PaymentMethod, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE user_id = $1 AND is_default = TRUE
	`

	method, err := scanPaymentMethod(r.DB.QueryRowContext(dbCtx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return method, nil
}

func (r *paymentMethodRepository) GetNewestPaymentMethod(ctx context.Context, userID uuid.UUID) (*models.PaymentMethod, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	method, err := scanPaymentMethod(r.DB.QueryRowContext(dbCtx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return method, nil
}

func (r *paymentMethodRepository) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]*models.PaymentMethod, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + paymentMethodColumns + `
		FROM payment_methods
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC, id DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	defer rows.Close()

	var methods []*models.PaymentMethod

	for rows.Next() {
		method, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment method: %w", err)
		}

		methods = append(methods, method)
	}

	return methods, rows.Err()
}

// UpdatePaymentMethod saves edits to a card. Promoting a card to default
// clears the flag from the rest of the user's cards in the same transaction.
func (r *paymentMethodRepository) UpdatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if method.IsDefault {
		unsetQuery := `
			UPDATE payment_methods
			SET is_default = FALSE
			WHERE user_id = $1 AND is_default = TRUE AND id <> $2
		`

		if _, err := tx.ExecContext(dbCtx, unsetQuery, method.UserID, method.ID); err != nil {
			return fmt.Errorf("failed to clear default flag: %w", err)
		}
	}

	updateQuery := `
		UPDATE payment_methods
		SET cardholder_name = $1, brand = $2, last4 = $3, exp_month = $4, exp_year = $5,
			billing_postal = $6, is_default = $7
		WHERE id = $8 AND user_id = $9
	`

	result, err := tx.ExecContext(dbCtx, updateQuery,
		method.CardholderName, method.Brand, method.Last4, method.ExpMonth, method.ExpYear,
		method.BillingPostal, method.IsDefault, method.ID, method.UserID)
	if err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeletePaymentMethod removes a card. Deleting the default promotes the
// user's newest remaining card so a default always exists while cards do.
func (r *paymentMethodRepository) DeletePaymentMethod(ctx context.Context, userID uuid.UUID, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleteQuery := `
		DELETE FROM payment_methods
		WHERE id = $1 AND user_id = $2
		RETURNING is_default
	`

	var wasDefault bool

	err = tx.QueryRowContext(dbCtx, deleteQuery, id, userID).Scan(&wasDefault)
	if err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	if wasDefault {
		promoteQuery := `
			UPDATE payment_methods
			SET is_default = TRUE
			WHERE id = (
				SELECT id
				FROM payment_methods
				WHERE user_id = $1
				ORDER BY created_at DESC, id DESC
				LIMIT 1
			)
		`

		if _, err := tx.ExecContext(dbCtx, promoteQuery, userID); err != nil {
			return fmt.Errorf("failed to promote payment method: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
