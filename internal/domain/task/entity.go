package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyTitle = errors.New("task must have a title")

// Task is a calendar entry: follow-ups, approvals due back, maintenance
// appointments.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"due_date"`
	AllDay      bool       `json:"all_day"`
	Completed   bool       `json:"completed"`
	ClientID    *string    `json:"client_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a calendar task.
func NewTask(title, description string, dueDate time.Time, allDay bool, clientID *string) (*Task, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}

	now := time.Now()
	return &Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		AllDay:      allDay,
		ClientID:    clientID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update replaces the mutable fields of the task.
func (t *Task) Update(title, description string, dueDate time.Time, allDay bool, clientID *string) error {
	if title == "" {
		return ErrEmptyTitle
	}

	t.Title = title
	t.Description = description
	t.DueDate = dueDate
	t.AllDay = allDay
	t.ClientID = clientID
	t.UpdatedAt = time.Now()
	return nil
}

// Complete marks the task done.
func (t *Task) Complete() {
	t.Completed = true
	t.UpdatedAt = time.Now()
}

// Reopen marks the task not done.
func (t *Task) Reopen() {
	t.Completed = false
	t.UpdatedAt = time.Now()
}
