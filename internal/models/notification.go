package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

type NotificationStatus string

const (
	NotificationTypeEmail NotificationType = "email"

	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification is the audit row for an outbound message, currently only
// order-confirmation emails.
type Notification struct {
	ID           uuid.UUID          `json:"id"`
	Type         NotificationType   `json:"type"`
	Recipient    string             `json:"recipient"`
	Subject      string             `json:"subject"`
	Content      string             `json:"content"`
	Status       NotificationStatus `json:"status"`
	ErrorMessage string             `json:"error_message,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type EmailNotificationRequest struct {
	To          string `json:"to" validate:"required,email"`
	Subject     string `json:"subject" validate:"required"`
	Content     string `json:"content" validate:"required"`
	HTMLContent string `json:"html_content"`
}
