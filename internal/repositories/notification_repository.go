package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/R-umaria/boxedwithlove/internal/models"
	"github.com/R-umaria/boxedwithlove/internal/utils"
	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMessage string) error
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepo(db *sql.DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notifications (id, type, recipient, subject, content, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		notification.ID, notification.Type, notification.Recipient,
		notification.Subject, notification.Content, notification.Status).
		Scan(&notification.CreatedAt, &notification.UpdatedAt)
}

func (r *notificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMessage string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE notifications
		SET status = $1, error_message = NULLIF($2, ''), updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
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
