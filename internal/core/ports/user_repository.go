package ports

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned id.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns all users except the reserved bootstrap admin.
	List(ctx context.Context) ([]domain.User, error)
	// Update persists the full user document. Returns domain.ErrEmailTaken
	// when the new email collides with another account.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}
