package ports

import (
	"context"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

// NotificationInput is a notice to be delivered to one recipient.
type NotificationInput struct {
	Recipient string
	Title     string
	Body      string
	Kind      domain.NotificationKind
}

// Notifier hands notices off for delivery. Implementations must not block
// the caller on delivery.
type Notifier interface {
	Enqueue(n NotificationInput)
}

// NotificationRepository stores inbox entries.
type NotificationRepository interface {
	Add(ctx context.Context, n *domain.Notification) error
	// ListByRecipient returns the recipient's notifications, newest first.
	ListByRecipient(ctx context.Context, recipient string) ([]domain.Notification, error)
	MarkAllRead(ctx context.Context, recipient string) error
}

// NotificationService delivers and reads inbox entries.
type NotificationService interface {
	Notify(ctx context.Context, input NotificationInput) error
	List(ctx context.Context, recipient string) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, recipient string) (int, error)
}
