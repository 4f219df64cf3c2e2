package handler

import (
	"github.com/homeharbor/harbor-api/internal/core/domain"
	"github.com/homeharbor/harbor-api/internal/core/ports"
)

type submitTaskRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"    validate:"required,oneof=Plumbing Electrical Carpentry Appliance Other"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=low medium high"`
}

type taskListResponse struct {
	Items []domain.Task `json:"items"`
	Count int           `json:"count"`
}

type directoryListResponse struct {
	Items []domain.Apartment `json:"items"`
	Count int                `json:"count"`
}

type notificationListResponse struct {
	Items  []domain.Notification `json:"items"`
	Unread int                   `json:"unread"`
}

func toSubmitInput(req submitTaskRequest, reportedBy string) ports.SubmitTaskInput {
	return ports.SubmitTaskInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Location:    req.Location,
		Priority:    domain.Priority(req.Priority),
		ReportedBy:  reportedBy,
	}
}
