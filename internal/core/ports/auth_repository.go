package ports

import (
	"context"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

// AccountRepository stores signup requests and approved accounts.
// Implementations must keep insertion order for both collections.
type AccountRepository interface {
	AddPending(ctx context.Context, p *domain.PendingUser) error
	// FindPendingByEmail returns the first pending request with that email,
	// or domain.ErrUserNotFound.
	FindPendingByEmail(ctx context.Context, email string) (*domain.PendingUser, error)
	// TakePending removes and returns the pending request with the given id,
	// or domain.ErrUserNotFound when there is none.
	TakePending(ctx context.Context, id string) (*domain.PendingUser, error)
	ListPending(ctx context.Context) ([]domain.PendingUser, error)

	AddApproved(ctx context.Context, u *domain.User) error
	// FindApproved returns every approved account with that email, oldest first.
	FindApproved(ctx context.Context, email string) ([]domain.User, error)
	ListApproved(ctx context.Context) ([]domain.User, error)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
