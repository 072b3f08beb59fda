package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rsoares/taskhub-api/internal/domain"
	"github.com/rsoares/taskhub-api/internal/store"
)

// TaskStore implements store.TaskStore in memory.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]*domain.Task
	nextID int64
}

// NewTaskStore creates an empty in-memory TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.nextID
	s.nextID++

	stored := *task
	s.tasks[task.ID] = &stored
	return nil
}

// GetByID implements store.TaskStore.GetByID. A foreign owner's task and a
// missing task are the same error.
func (s *TaskStore) GetByID(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

// List implements store.TaskStore.List: the same predicate drives the total
// and the page window, ordered by ID descending.
func (s *TaskStore) List(ctx context.Context, params store.ListTasksParams) ([]*domain.Task, int64, error) {
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Task, 0)
	for _, task := range s.tasks {
		if !matches(task, params) {
			continue
		}
		copied := *task
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))

	start := params.Offset()
	if start >= len(matched) {
		return []*domain.Task{}, total, nil
	}
	end := start + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return store.ErrTaskNotFound
	}

	stored := *task
	s.tasks[task.ID] = &stored
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, ownerID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// deleteByOwner removes all tasks belonging to the owner. Used by the user
// store's cascade delete.
func (s *TaskStore) deleteByOwner(ownerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, task := range s.tasks {
		if task.OwnerID == ownerID {
			delete(s.tasks, id)
		}
	}
}

// matches applies the list predicate: ownership, optional completion state,
// optional case-insensitive title substring.
func matches(task *domain.Task, params store.ListTasksParams) bool {
	if task.OwnerID != params.OwnerID() {
		return false
	}
	if params.Completed != nil && task.Completed != *params.Completed {
		return false
	}
	if params.Search != "" &&
		!strings.Contains(strings.ToLower(task.Title), strings.ToLower(params.Search)) {
		return false
	}
	return true
}
