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

type TaskService struct {
	repo     ports.TaskRepository
	notifier ports.Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewTaskService(repo ports.TaskRepository, notifier ports.Notifier, logger zerolog.Logger) *TaskService {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &TaskService{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

// Submit records a new repair request in status "open".
func (s *TaskService) Submit(ctx context.Context, input ports.SubmitTaskInput) (*domain.Task, error) {
	if !domain.KnownCategory(input.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidTask, input.Category)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidTask)
	}

	priority := input.Priority
	switch priority {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
	case "":
		priority = domain.PriorityLow
	default:
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidTask, priority)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = input.Category + " repair"
	}

	now := s.now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Priority:    priority,
		Status:      domain.TaskOpen,
		ReportedBy:  input.ReportedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
		History:     []domain.TaskTransition{{Status: domain.TaskOpen, Timestamp: now, By: input.ReportedBy}},
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("category", task.Category).Msg("task submitted")
	return task, nil
}

func (s *TaskService) Accept(ctx context.Context, id, staffEmail string) (*domain.Task, error) {
	return s.transition(ctx, id, staffEmail, domain.TaskAccepted)
}

func (s *TaskService) Reject(ctx context.Context, id, staffEmail string) (*domain.Task, error) {
	return s.transition(ctx, id, staffEmail, domain.TaskRejected)
}

// Complete closes an accepted task. Only the staff member who accepted it may complete it.
func (s *TaskService) Complete(ctx context.Context, id, staffEmail string) (*domain.Task, error) {
	return s.transition(ctx, id, staffEmail, domain.TaskCompleted)
}

// List returns tasks newest first. Residents only ever see their own requests.
func (s *TaskService) List(ctx context.Context, role domain.Role, email string, filter ports.TaskFilter) ([]domain.Task, error) {
	if role == domain.RoleResident {
		filter.ReportedBy = email
	}
	return s.repo.List(ctx, filter)
}

func (s *TaskService) transition(ctx context.Context, id, staffEmail string, next domain.TaskStatus) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !task.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, task.Status, next)
	}
	if next == domain.TaskCompleted && task.AssignedTo != staffEmail {
		return nil, domain.ErrForbidden
	}

	assignee := task.AssignedTo
	if next == domain.TaskAccepted {
		assignee = staffEmail
	}

	updated, err := s.repo.UpdateStatus(ctx, id, task.Status, domain.TaskTransition{
		Status:    next,
		Timestamp: s.now().UTC(),
		By:        staffEmail,
	}, assignee)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", next, err)
	}

	metrics.TaskTransitionsTotal.WithLabelValues(string(next)).Inc()
	s.logger.Info().Str("task_id", id).Str("status", string(next)).Str("by", staffEmail).Msg("task status changed")

	if updated.ReportedBy != "" {
		s.notifier.Enqueue(ports.NotificationInput{
			Recipient: updated.ReportedBy,
			Title:     "Maintenance Request " + statusTitle(next),
			Body:      fmt.Sprintf("%s - %s", updated.Location, updated.Title),
			Kind:      domain.KindMaintenance,
		})
	}
	return updated, nil
}

func statusTitle(s domain.TaskStatus) string {
	switch s {
	case domain.TaskAccepted:
		return "Accepted"
	case domain.TaskRejected:
		return "Rejected"
	case domain.TaskCompleted:
		return "Completed"
	}
	return string(s)
}
