package ports

import (
	"context"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

// SignupInput carries a public account request.
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ApartmentNumber string
	Role            domain.Role
}

// AuthService is the authority over the current session and the approval queue.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Signup(ctx context.Context, input SignupInput) (*domain.PendingUser, error)
	Logout(ctx context.Context)
	ApproveUser(ctx context.Context, id string) error
	RejectUser(ctx context.Context, id string) error

	Session() domain.Session
	PendingUsers(ctx context.Context) ([]domain.PendingUser, error)
	ApprovedUsers(ctx context.Context) ([]domain.User, error)
	IsActiveToken(token string) bool
}
