package domain

import "time"

// TaskStatus represents the lifecycle state of a maintenance task.
type TaskStatus string

const (
	TaskOpen      TaskStatus = "open"
	TaskAccepted  TaskStatus = "accepted"
	TaskRejected  TaskStatus = "rejected"
	TaskCompleted TaskStatus = "completed"
)

// validTaskTransitions defines the allowed state machine transitions.
var validTaskTransitions = map[TaskStatus][]TaskStatus{
	TaskOpen:     {TaskAccepted, TaskRejected},
	TaskAccepted: {TaskCompleted},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range validTaskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Priority ranks how urgently a task should be picked up.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// TaskCategories lists the repair categories a resident can choose from.
var TaskCategories = []string{"Plumbing", "Electrical", "Carpentry", "Appliance", "Other"}

// KnownCategory reports whether c is one of TaskCategories.
func KnownCategory(c string) bool {
	for _, known := range TaskCategories {
		if known == c {
			return true
		}
	}
	return false
}

// TaskTransition records a single status change on a task.
type TaskTransition struct {
	Status    TaskStatus `json:"status" bson:"status"`
	Timestamp time.Time  `json:"timestamp" bson:"timestamp"`
	By        string     `json:"by,omitempty" bson:"by,omitempty"`
}

// Task is a maintenance request raised by a resident and worked by staff.
type Task struct {
	ID          string           `json:"id" bson:"_id"`
	Title       string           `json:"title" bson:"title"`
	Description string           `json:"description" bson:"description"`
	Category    string           `json:"category" bson:"category"`
	Location    string           `json:"location" bson:"location"`
	Priority    Priority         `json:"priority" bson:"priority"`
	Status      TaskStatus       `json:"status" bson:"status"`
	ReportedBy  string           `json:"reported_by" bson:"reported_by"`
	AssignedTo  string           `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" bson:"updated_at"`
	History     []TaskTransition `json:"history" bson:"history"`
}
