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

const staffEmail = "staff@example.com"

func newTaskSvc(t *testing.T) (*TaskService, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	svc := NewTaskService(memory.NewTaskRepository(nil), notifier, zerolog.Nop())
	return svc, notifier
}

func submitLeak(t *testing.T, svc *TaskService) *domain.Task {
	t.Helper()
	task, err := svc.Submit(context.Background(), ports.SubmitTaskInput{
		Category:    "Plumbing",
		Description: "Kitchen sink drips overnight",
		Location:    "Unit 304",
		ReportedBy:  "resident@example.com",
	})
	require.NoError(t, err)
	return task
}

func TestTaskService_Submit_Defaults(t *testing.T) {
	svc, _ := newTaskSvc(t)
	task := submitLeak(t, svc)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Plumbing repair", task.Title)
	assert.Equal(t, domain.PriorityLow, task.Priority)
	assert.Equal(t, domain.TaskOpen, task.Status)
	require.Len(t, task.History, 1)
	assert.Equal(t, "resident@example.com", task.History[0].By)
}

func TestTaskService_Submit_Validation(t *testing.T) {
	svc, _ := newTaskSvc(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input ports.SubmitTaskInput
	}{
		{"unknown category", ports.SubmitTaskInput{Category: "Roofing", Description: "leak"}},
		{"blank description", ports.SubmitTaskInput{Category: "Plumbing", Description: "   "}},
		{"unknown priority", ports.SubmitTaskInput{Category: "Plumbing", Description: "leak", Priority: "urgent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidTask)
		})
	}
}

func TestTaskService_AcceptThenComplete(t *testing.T) {
	svc, notifier := newTaskSvc(t)
	ctx := context.Background()
	task := submitLeak(t, svc)

	accepted, err := svc.Accept(ctx, task.ID, staffEmail)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskAccepted, accepted.Status)
	assert.Equal(t, staffEmail, accepted.AssignedTo)

	completed, err := svc.Complete(ctx, task.ID, staffEmail)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, completed.Status)
	assert.Len(t, completed.History, 3)

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "Maintenance Request Accepted", notifier.sent[0].Title)
	assert.Equal(t, "Maintenance Request Completed", notifier.sent[1].Title)
	assert.Equal(t, "resident@example.com", notifier.sent[1].Recipient)
	assert.Equal(t, domain.KindMaintenance, notifier.sent[1].Kind)
}

func TestTaskService_Complete_OnlyByAssignee(t *testing.T) {
	svc, _ := newTaskSvc(t)
	ctx := context.Background()
	task := submitLeak(t, svc)

	_, err := svc.Accept(ctx, task.ID, staffEmail)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, task.ID, "other.staff@example.com")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTaskService_InvalidTransitions(t *testing.T) {
	svc, _ := newTaskSvc(t)
	ctx := context.Background()
	task := submitLeak(t, svc)

	_, err := svc.Complete(ctx, task.ID, staffEmail)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "open task cannot be completed")

	_, err = svc.Reject(ctx, task.ID, staffEmail)
	require.NoError(t, err)

	_, err = svc.Accept(ctx, task.ID, staffEmail)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "rejected is terminal")
}

func TestTaskService_UnknownTask(t *testing.T) {
	svc, _ := newTaskSvc(t)
	_, err := svc.Accept(context.Background(), "missing", staffEmail)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskService_List_ResidentsSeeOwnRequests(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewTaskService(memory.NewTaskRepository(memory.SeedTasks(time.Now())), notifier, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Submit(ctx, ports.SubmitTaskInput{
		Category: "Electrical", Description: "Outlet sparks", ReportedBy: "ada@example.com",
	})
	require.NoError(t, err)

	mine, err := svc.List(ctx, domain.RoleResident, "ada@example.com", ports.TaskFilter{ReportedBy: "resident@example.com"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "ada@example.com", mine[0].ReportedBy)

	all, err := svc.List(ctx, domain.RoleStaff, staffEmail, ports.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	open, err := svc.List(ctx, domain.RoleAdmin, "admin@example.com", ports.TaskFilter{Status: string(domain.TaskOpen)})
	require.NoError(t, err)
	assert.Len(t, open, 4)
}
