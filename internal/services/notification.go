package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/R-umaria/boxedwithlove/internal/models"
	repository "github.com/R-umaria/boxedwithlove/internal/repositories"
	"github.com/R-umaria/boxedwithlove/pkg/sendgrid"
	"github.com/google/uuid"
)

// NotificationService records every outbound email in postgres and hands
// delivery to sendgrid. Delivery failures flip the row to failed; they
// never fail the operation that triggered the email.
type NotificationService struct {
	repo   repository.NotificationRepository
	email  sendgrid.EmailService
	logger *slog.Logger
}

func NewNotificationService(repo repository.NotificationRepository, email sendgrid.EmailService, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		email:  email,
		logger: logger,
	}
}

func (s *NotificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) {

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.NotificationStatusPending,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		s.logger.Error("failed to record notification", slog.String("recipient", req.To), slog.Any("error", err))
		return
	}

	if err := s.email.Send(ctx, req); err != nil {
		s.logger.Error("failed to send email", slog.String("notificationId", notification.ID.String()), slog.Any("error", err))

		if err := s.repo.UpdateStatus(ctx, notification.ID, models.NotificationStatusFailed, err.Error()); err != nil {
			s.logger.Error("failed to update notification status", slog.Any("error", err))
		}

		return
	}

	if err := s.repo.UpdateStatus(ctx, notification.ID, models.NotificationStatusSent, ""); err != nil {
		s.logger.Error("failed to update notification status", slog.Any("error", err))
	}
}

// SendOrderConfirmation builds and sends the receipt for a placed order.
func (s *NotificationService) SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) {

	var b strings.Builder

	fmt.Fprintf(&b, "Thanks for your order, %s!\n\n", user.Name)
	fmt.Fprintf(&b, "Order %s\n\n", order.ID)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%d x %s - %s\n", item.Quantity, item.ProductName, formatCents(item.LineTotalCents))
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", formatCents(order.TotalCents))

	s.SendEmail(ctx, &models.EmailNotificationRequest{
		To:      user.Email,
		Subject: fmt.Sprintf("Your Boxed with Love order %s", shortOrderRef(order.ID)),
		Content: b.String(),
	})
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func shortOrderRef(id uuid.UUID) string {
	return strings.ToUpper(strings.SplitN(id.String(), "-", 2)[0])
}
