package store

import (
	"context"

	"github.com/rsoares/taskhub-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and assigns its ID. The user must already
	// carry a hashed password. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email address. The lookup is
	// case-sensitive. Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Delete removes a user and, through the ownership relation, all of
	// their tasks. Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error
}
