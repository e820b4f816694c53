package dto

import (
	"time"

	"github.com/haeunkim/luthier-crm/internal/domain/task"
)

// TaskRequest is the create/update payload for a calendar task
type TaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date" binding:"required"`
	AllDay      bool    `json:"all_day"`
	ClientID    *string `json:"client_id"`
}

// TaskResponse is the task payload returned by the API
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"due_date"`
	AllDay      bool      `json:"all_day"`
	Completed   bool      `json:"completed"`
	ClientID    *string   `json:"client_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToTaskResponse converts a domain task to its response shape
func ToTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.Format("2006-01-02"),
		AllDay:      t.AllDay,
		Completed:   t.Completed,
		ClientID:    t.ClientID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of domain tasks
func ToTaskResponses(tasks []*task.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToTaskResponse(t))
	}
	return out
}
