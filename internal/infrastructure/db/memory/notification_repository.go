package memory

import (
	"context"
	"sync"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

// NotificationRepository keeps one inbox per recipient, oldest entry first.
type NotificationRepository struct {
	mu    sync.RWMutex
	inbox map[string][]domain.Notification
}

func NewNotificationRepository(seed []domain.Notification) *NotificationRepository {
	r := &NotificationRepository{inbox: make(map[string][]domain.Notification)}
	for _, n := range seed {
		r.inbox[n.Recipient] = append(r.inbox[n.Recipient], n)
	}
	return r
}

func (r *NotificationRepository) Add(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inbox[n.Recipient] = append(r.inbox[n.Recipient], *n)
	return nil
}

func (r *NotificationRepository) ListByRecipient(_ context.Context, recipient string) ([]domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.inbox[recipient]
	out := make([]domain.Notification, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
	}
	return out, nil
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, recipient string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.inbox[recipient]
	for i := range items {
		items[i].Read = true
	}
	return nil
}
