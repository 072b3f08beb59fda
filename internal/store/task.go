package store

import (
	"context"

	"github.com/rsoares/taskhub-api/internal/domain"
)

// List defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListTasksParams describes one ownership-scoped, filtered, paginated task
// query. The owner ID is a constructor argument on purpose: every task query
// in the system is scoped to its caller, and an owner-less query should be
// unrepresentable rather than a forgotten WHERE clause.
type ListTasksParams struct {
	ownerID int64

	// Page is 1-based. Values below 1 fail validation; they are never clamped.
	Page int

	// Limit is the page size, in [1, MaxLimit].
	Limit int

	// Completed, when non-nil, restricts results to tasks with that
	// completion state.
	Completed *bool

	// Search, when non-empty, restricts results to tasks whose title
	// contains it as a case-insensitive substring.
	Search string
}

// NewListTasksParams creates query parameters scoped to the given owner,
// with default pagination.
func NewListTasksParams(ownerID int64) ListTasksParams {
	return ListTasksParams{
		ownerID: ownerID,
		Page:    DefaultPage,
		Limit:   DefaultLimit,
	}
}

// OwnerID returns the owner the query is scoped to.
func (p ListTasksParams) OwnerID() int64 {
	return p.ownerID
}

// Offset returns the row offset for the requested page.
func (p ListTasksParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Validate rejects out-of-range pagination values.
func (p ListTasksParams) Validate() error {
	if p.Page < 1 {
		return domain.ErrInvalidPage
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return domain.ErrInvalidLimit
	}
	return nil
}

// TaskStore defines the interface for task data persistence. Every read and
// mutation of an existing task is scoped to an owner; a task belonging to a
// different owner is indistinguishable from a missing one.
type TaskStore interface {
	// Create saves a new task and assigns its ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID for the given owner.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	GetByID(ctx context.Context, ownerID, id int64) (*domain.Task, error)

	// List returns one page of the owner's tasks matching the params,
	// ordered by ID descending, together with the total number of matching
	// rows across all pages. params must have passed Validate.
	List(ctx context.Context, params ListTasksParams) ([]*domain.Task, int64, error)

	// Update persists the full task row, scoped to the task's owner.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID for the given owner. A repeated delete of
	// the same ID returns ErrTaskNotFound.
	Delete(ctx context.Context, ownerID, id int64) error
}
