package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/homeharbor/harbor-api/internal/core/domain"
	"github.com/homeharbor/harbor-api/internal/core/ports"
)

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

// NewTaskRepository returns a repository preloaded with seed.
func NewTaskRepository(seed []domain.Task) *TaskRepository {
	r := &TaskRepository{tasks: make(map[string]*domain.Task, len(seed))}
	for i := range seed {
		t := cloneTask(&seed[i])
		r.tasks[t.ID] = t
	}
	return r
}

func (r *TaskRepository) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *TaskRepository) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *TaskRepository) UpdateStatus(_ context.Context, id string, from domain.TaskStatus, tr domain.TaskTransition, assignedTo string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if t.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	t.Status = tr.Status
	t.AssignedTo = assignedTo
	t.UpdatedAt = tr.Timestamp
	t.History = append(t.History, tr)
	return cloneTask(t), nil
}

func (r *TaskRepository) List(_ context.Context, f ports.TaskFilter) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.ReportedBy != "" && t.ReportedBy != f.ReportedBy {
			continue
		}
		out = append(out, *cloneTask(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	clone.History = append([]domain.TaskTransition(nil), t.History...)
	return &clone
}
