package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/homeharbor/harbor-api/internal/api/metrics"
	"github.com/homeharbor/harbor-api/internal/core/domain"
	"github.com/homeharbor/harbor-api/internal/core/ports"
)

type notificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) ports.NotificationService {
	return &notificationService{repo: repo, log: log, now: time.Now}
}

// Notify stores a notification in the recipient's inbox.
func (s *notificationService) Notify(ctx context.Context, in ports.NotificationInput) error {
	recipient := strings.TrimSpace(in.Recipient)
	if recipient == "" {
		return fmt.Errorf("notify: recipient is required")
	}

	n := &domain.Notification{
		ID:        uuid.NewString(),
		Recipient: recipient,
		Title:     in.Title,
		Body:      in.Body,
		Kind:      in.Kind,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Add(ctx, n); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	metrics.NotificationsDeliveredTotal.WithLabelValues(string(in.Kind)).Inc()
	s.log.Debug().Str("recipient", recipient).Str("kind", string(in.Kind)).Msg("notification delivered")
	return nil
}

// List returns the recipient's inbox newest first, then marks everything read.
// The returned slice still carries the read flags as they were before the call.
func (s *notificationService) List(ctx context.Context, recipient string) ([]domain.Notification, error) {
	items, err := s.repo.ListByRecipient(ctx, recipient)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if err := s.repo.MarkAllRead(ctx, recipient); err != nil {
		s.log.Warn().Err(err).Str("recipient", recipient).Msg("failed to mark notifications read")
	}
	return items, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, recipient string) (int, error) {
	items, err := s.repo.ListByRecipient(ctx, recipient)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	n := 0
	for _, item := range items {
		if !item.Read {
			n++
		}
	}
	return n, nil
}
