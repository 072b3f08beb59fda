package api

import (
	"time"

	"github.com/rsoares/taskhub-api/internal/domain"
)

// Request/response structures for the HTTP surface.

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// RegisterResponse is the public projection of a newly created user.
// The password digest never appears on the wire.
type RegisterResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateTaskRequest is the payload for POST /tasks. DueDate, when present,
// must be an RFC 3339 timestamp.
type CreateTaskRequest struct {
	Title   string  `json:"title" validate:"required"`
	DueDate *string `json:"dueDate"`
}

// UpdateTaskRequest is the payload for PUT /tasks/{id}. All fields are
// optional; only provided ones change. DueDate is kept raw so that an
// explicit null (clear the date) can be told apart from an absent field.
type UpdateTaskRequest struct {
	Title     *string         `json:"title"`
	Completed *bool           `json:"completed"`
	DueDate   rawOptionalTime `json:"dueDate"`
}

// rawOptionalTime records whether a JSON field was present at all, and if
// so whether it was null or a timestamp string.
type rawOptionalTime struct {
	Present bool
	Null    bool
	Value   string
}

// UnmarshalJSON implements json.Unmarshaler. It is only called when the
// field is present in the document.
func (o *rawOptionalTime) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return domain.ErrInvalidDueDate
	}
	o.Value = string(data[1 : len(data)-1])
	return nil
}

// TaskResponse is the wire shape of a task. Completed is always a JSON
// boolean regardless of how the store represents it, and the owner linkage
// never leaves the server.
type TaskResponse struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// taskToResponse converts a domain.Task to its wire shape.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Completed: task.Completed,
		DueDate:   task.DueDate,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// Pagination describes the window a task list response covers.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination computes pagination metadata for a page of a result set.
// An empty result set has zero pages and neither neighbor.
func NewPagination(page, limit int, total int64) Pagination {
	var totalPages int64
	if total > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(page) < totalPages,
		HasPrev:    page > 1,
	}
}

// TaskListResponse is the envelope for GET /tasks.
type TaskListResponse struct {
	Data       []TaskResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NotFoundResponse names the unmatched route for unknown paths/methods.
type NotFoundResponse struct {
	Error  string `json:"error"`
	Path   string `json:"path"`
	Method string `json:"method"`
}
