package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rsoares/taskhub-api/internal/domain"
	"github.com/rsoares/taskhub-api/internal/platform/logger"
	"github.com/rsoares/taskhub-api/internal/store"
)

// PostgreSQL error codes.
const foreignKeyViolationCode = "23503"

// TaskStore implements store.TaskStore on PostgreSQL.
//
// The tasks.completed column is a SMALLINT holding 0 or 1, a convention
// inherited from the dialect the schema was first written for. The mapping
// to the domain's bool happens here and nowhere else.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a PostgreSQL-backed TaskStore. The connection (or
// transaction) is owned and managed by the caller. A nil logger falls back
// to the process default.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// completedToInt maps the domain bool onto the 0/1 column value.
func completedToInt(completed bool) int16 {
	if completed {
		return 1
	}
	return 0
}

// Create implements store.TaskStore.Create. The assigned ID is written back
// to the task.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (owner_id, title, completed, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.OwnerID,
		task.Title,
		completedToInt(task.Completed),
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			log.Warn("foreign key violation during task creation",
				slog.Int64("owner_id", task.OwnerID))
			return fmt.Errorf("%w: owner %d", store.ErrUserNotFound, task.OwnerID)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", task.OwnerID))
		return store.NewStoreError("task", "create", "insert failed", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", task.OwnerID))
	return nil
}

// GetByID implements store.TaskStore.GetByID. The owner is part of the
// predicate, so another user's task and a nonexistent one both come back as
// store.ErrTaskNotFound.
func (s *TaskStore) GetByID(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, completed, due_date, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "get", "query failed", err)
	}

	return task, nil
}

// List implements store.TaskStore.List. The count and the page query share
// one predicate, so the total always matches the filter, and ordering by id
// descending keeps pages stable under concurrent inserts.
func (s *TaskStore) List(ctx context.Context, params store.ListTasksParams) ([]*domain.Task, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	where, args := buildTaskPredicate(params)

	var total int64
	countQuery := `SELECT COUNT(*) FROM tasks WHERE ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", params.OwnerID()))
		return nil, 0, store.NewStoreError("task", "list", "count failed", err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, owner_id, title, completed, due_date, created_at, updated_at
		FROM tasks
		WHERE %s
		ORDER BY id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := s.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", params.OwnerID()))
		return nil, 0, store.NewStoreError("task", "list", "query failed", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, 0, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("task", "list", "iteration failed", err)
	}

	log.Debug("listed tasks",
		slog.Int64("owner_id", params.OwnerID()),
		slog.Int("count", len(tasks)),
		slog.Int64("total", total))
	return tasks, total, nil
}

// Update implements store.TaskStore.Update. The WHERE clause carries the
// owner, so an update of a foreign task reports not-found instead of
// touching the row.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, completed = $2, due_date = $3, updated_at = $4
		WHERE id = $5 AND owner_id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		completedToInt(task.Completed),
		task.DueDate,
		task.UpdatedAt,
		task.ID,
		task.OwnerID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return store.NewStoreError("task", "update", "exec failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "update", "rows affected", err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task updated", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete. A second delete of the same ID
// finds no row and reports not-found.
func (s *TaskStore) Delete(ctx context.Context, ownerID, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_id = $2`,
		id,
		ownerID,
	)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", "exec failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "delete", "rows affected", err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task deleted", slog.Int64("task_id", id), slog.Int64("owner_id", ownerID))
	return nil
}

// buildTaskPredicate renders the shared WHERE clause for List. The owner
// condition always comes first; the optional filters are appended with
// positional placeholders continuing after the existing args.
func buildTaskPredicate(params store.ListTasksParams) (string, []any) {
	conds := []string{"owner_id = $1"}
	args := []any{params.OwnerID()}

	if params.Completed != nil {
		args = append(args, completedToInt(*params.Completed))
		conds = append(conds, fmt.Sprintf("completed = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, params.Search)
		conds = append(conds, fmt.Sprintf("LOWER(title) LIKE '%%' || LOWER($%d) || '%%'", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row, converting the 0/1 completed column and the
// nullable due date back into domain types.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var completed int16
	var dueDate sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&completed,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Completed = completed == 1
	if dueDate.Valid {
		due := dueDate.Time.UTC()
		task.DueDate = &due
	}
	return &task, nil
}
