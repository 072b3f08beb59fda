// Package memory implements the store interfaces in process memory. It
// backs the database-less deployment mode and the handler tests; it is not
// meant for multi-instance use.
package memory

import (
	"context"
	"sync"

	"github.com/rsoares/taskhub-api/internal/domain"
	"github.com/rsoares/taskhub-api/internal/store"
)

// UserStore implements store.UserStore in memory.
type UserStore struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64

	tasks *TaskStore // for cascade delete; may be nil
}

// NewUserStore creates an empty in-memory UserStore. If tasks is non-nil,
// deleting a user also deletes their tasks, mirroring the FK cascade of the
// SQL schema.
func NewUserStore(tasks *TaskStore) *UserStore {
	return &UserStore{
		users:  make(map[int64]*domain.User),
		nextID: 1,
		tasks:  tasks,
	}
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	user.ID = s.nextID
	s.nextID++

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByEmail implements store.UserStore.GetByEmail (case-sensitive).
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Delete implements store.UserStore.Delete, cascading to the user's tasks
// when a task store is attached.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	if _, ok := s.users[id]; !ok {
		s.mu.Unlock()
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	s.mu.Unlock()

	if s.tasks != nil {
		s.tasks.deleteByOwner(id)
	}
	return nil
}
