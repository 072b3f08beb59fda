package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rsoares/taskhub-api/internal/api/shared"
	"github.com/rsoares/taskhub-api/internal/domain"
	"github.com/rsoares/taskhub-api/internal/store"
)

// TaskHandler handles the task CRUD and listing endpoints. Every operation
// is scoped to the authenticated user; a task that exists but belongs to
// someone else is indistinguishable from one that does not exist.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with its dependencies.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	params, err := h.parseListParams(r, userID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	tasks, total, err := h.taskStore.List(ctx, params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	data := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		data = append(data, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Data:       data,
		Pagination: NewPagination(params.Page, params.Limit, total),
	})
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskStore.GetByID(ctx, userID, id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := buildNewTask(userID, req)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	if err := h.taskStore.Create(ctx, task); err != nil {
		// A missing owner row means the token outlived its user account.
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.DebugContext(ctx, "task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", userID))

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Update handles PUT /tasks/{id}. Only fields present in the body change;
// a null dueDate clears the date, an absent one leaves it alone.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req UpdateTaskRequest
	if err := decodeStrict(r, &req); err != nil {
		if errors.Is(err, domain.ErrInvalidDueDate) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid due date")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	patch, err := buildTaskPatch(req)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	task, err := h.taskStore.GetByID(ctx, userID, id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := task.Apply(patch); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	if err := h.taskStore.Update(ctx, task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.taskStore.Delete(ctx, userID, id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.DebugContext(ctx, "task deleted",
		slog.Int64("task_id", id),
		slog.Int64("user_id", userID))

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// parseListParams builds validated list parameters from the query string.
// Unparseable values are rejected rather than silently defaulted.
func (h *TaskHandler) parseListParams(r *http.Request, userID int64) (store.ListTasksParams, error) {
	params := store.NewListTasksParams(userID)
	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return params, domain.ErrInvalidPage
		}
		params.Page = page
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return params, domain.ErrInvalidLimit
		}
		params.Limit = limit
	}
	if raw := query.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return params, domain.ErrValidation
		}
		params.Completed = &completed
	}
	params.Search = query.Get("search")

	return params, params.Validate()
}

// buildNewTask turns a create request into a validated domain task.
func buildNewTask(ownerID int64, req CreateTaskRequest) (*domain.Task, error) {
	if req.DueDate != nil {
		parsed, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		return domain.NewTask(ownerID, req.Title, parsed)
	}
	return domain.NewTask(ownerID, req.Title, nil)
}

// buildTaskPatch turns an update request into a domain patch.
func buildTaskPatch(req UpdateTaskRequest) (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:     req.Title,
		Completed: req.Completed,
	}

	if req.DueDate.Present {
		if req.DueDate.Null {
			patch.ClearDueDate = true
		} else {
			parsed, err := parseDueDate(req.DueDate.Value)
			if err != nil {
				return domain.TaskPatch{}, err
			}
			patch.DueDate = parsed
		}
	}
	return patch, nil
}
