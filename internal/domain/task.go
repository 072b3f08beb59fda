package domain

import (
	"errors"
	"strings"
	"time"
)

// Task validation errors.
var (
	ErrEmptyTitle = errors.New("title cannot be empty")
)

// Task is a single to-do item belonging to exactly one user. Tasks are only
// ever visible through requests authenticated as their owner.
//
// Completed is a plain bool here; storage backends that lack a boolean type
// map it to 0/1 at their own boundary.
type Task struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"-"` // Never serialized; ownership is implied by the request
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewTask creates a task for the given owner. New tasks start incomplete.
// The ID is assigned by the store on creation.
func NewTask(ownerID int64, title string, dueDate *time.Time) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		OwnerID:   ownerID,
		Title:     title,
		Completed: false,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the task's fields.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// TaskPatch describes a partial update. Nil fields are left untouched.
// ClearDueDate distinguishes "set due date to null" from "leave it alone",
// which a nil pointer cannot express on its own.
type TaskPatch struct {
	Title        *string
	Completed    *bool
	DueDate      *time.Time
	ClearDueDate bool
}

// Apply merges the patch into the task and refreshes UpdatedAt. An empty
// patch leaves everything but UpdatedAt unchanged. Returns a validation
// error if the patched task would be invalid.
func (t *Task) Apply(patch TaskPatch) error {
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return ErrEmptyTitle
		}
		t.Title = *patch.Title
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.ClearDueDate {
		t.DueDate = nil
	} else if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}
