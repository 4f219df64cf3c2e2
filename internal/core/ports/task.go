package ports

import (
	"context"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

// TaskFilter carries the list query. ReportedBy is enforced for residents.
type TaskFilter struct {
	Status     string
	ReportedBy string
}

// TaskRepository defines persistence operations for maintenance tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// UpdateStatus sets the new status and assignee and appends a history entry,
	// but only if the task is still in status from. It returns
	// domain.ErrInvalidTransition when the task moved on concurrently.
	UpdateStatus(ctx context.Context, id string, from domain.TaskStatus, t domain.TaskTransition, assignedTo string) (*domain.Task, error)
	// List returns tasks matching filter, newest first.
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
}

// SubmitTaskInput carries a new repair request.
type SubmitTaskInput struct {
	Title       string
	Category    string
	Description string
	Location    string
	Priority    domain.Priority
	ReportedBy  string
}

// TaskService defines use-case operations for maintenance tasks.
type TaskService interface {
	Submit(ctx context.Context, input SubmitTaskInput) (*domain.Task, error)
	Accept(ctx context.Context, id, staffEmail string) (*domain.Task, error)
	Reject(ctx context.Context, id, staffEmail string) (*domain.Task, error)
	Complete(ctx context.Context, id, staffEmail string) (*domain.Task, error)
	List(ctx context.Context, role domain.Role, email string, filter TaskFilter) ([]domain.Task, error)
}
