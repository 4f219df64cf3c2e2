package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeharbor/harbor-api/internal/core/domain"
	"github.com/homeharbor/harbor-api/internal/core/ports"
	"github.com/homeharbor/harbor-api/internal/infrastructure/db/memory"
)

func TestNotificationService_NotifyAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(memory.NewNotificationRepository(nil), zerolog.Nop())

	require.NoError(t, svc.Notify(ctx, ports.NotificationInput{
		Recipient: "ada@example.com", Title: "Account Approved", Kind: domain.KindAccount,
	}))
	require.NoError(t, svc.Notify(ctx, ports.NotificationInput{
		Recipient: "ada@example.com", Title: "Maintenance Request Accepted", Kind: domain.KindMaintenance,
	}))

	unread, err := svc.UnreadCount(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	items, err := svc.List(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.False(t, items[0].Read, "list reports the state before marking read")

	unread, err = svc.UnreadCount(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestNotificationService_RecipientRequired(t *testing.T) {
	svc := NewNotificationService(memory.NewNotificationRepository(nil), zerolog.Nop())
	err := svc.Notify(context.Background(), ports.NotificationInput{Recipient: " ", Title: "x"})
	assert.Error(t, err)
}

func TestNotificationService_InboxesAreSeparate(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(memory.NewNotificationRepository(memory.SeedNotifications(time.Now())), zerolog.Nop())

	items, err := svc.List(ctx, "resident@example.com")
	require.NoError(t, err)
	assert.Empty(t, items)

	unread, err := svc.UnreadCount(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, 4, unread)
}
