// Package memory holds the process-memory stores. Everything here is lost on
// restart, which is the default behaviour of the service.
package memory

import (
	"context"
	"sync"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

// AccountRepository keeps pending and approved accounts in insertion order.
type AccountRepository struct {
	mu       sync.RWMutex
	pending  []domain.PendingUser
	approved []domain.User
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

func (r *AccountRepository) AddPending(_ context.Context, p *domain.PendingUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, *p)
	return nil
}

func (r *AccountRepository) FindPendingByEmail(_ context.Context, email string) (*domain.PendingUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.pending {
		if p.Email == email {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *AccountRepository) TakePending(_ context.Context, id string) (*domain.PendingUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.pending {
		if p.ID == id {
			r.pending = append(r.pending[:i:i], r.pending[i+1:]...)
			return &p, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *AccountRepository) ListPending(_ context.Context) ([]domain.PendingUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.PendingUser{}, r.pending...), nil
}

func (r *AccountRepository) AddApproved(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.approved = append(r.approved, *u)
	return nil
}

func (r *AccountRepository) FindApproved(_ context.Context, email string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.User
	for _, u := range r.approved {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *AccountRepository) ListApproved(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.User{}, r.approved...), nil
}
