package ports

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
)

// UserSummary is a user annotated with the number of tasks they own.
type UserSummary struct {
	domain.User
	TasksCount int64 `json:"tasks_count"`
}

// UserDetail is the full admin view of a user including their tasks.
type UserDetail struct {
	domain.User
	Tasks []domain.Task `json:"tasks"`
}

// CreateUserInput carries the fields for admin user creation. The role is
// always "user".
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries a partial user update; nil fields are left
// untouched. An empty Password means "keep the current one".
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService defines admin user management, self-service profile editing and
// task analytics. Admin-scoped operations check the actor's role first.
type UserService interface {
	ListUsers(ctx context.Context, actor *domain.User) ([]UserSummary, error)
	GetUser(ctx context.Context, actor *domain.User, id int64) (*UserDetail, error)
	CreateUser(ctx context.Context, actor *domain.User, in CreateUserInput) (*domain.User, error)
	// UpdateUser applies a partial update and publishes a name-changed event
	// when the name field was supplied.
	UpdateUser(ctx context.Context, actor *domain.User, id int64, in UpdateUserInput) (*domain.User, error)
	// UpdateProfile lets any authenticated user edit their own record.
	UpdateProfile(ctx context.Context, actor *domain.User, in UpdateUserInput) (*domain.User, error)
	// DeleteUser fails with domain.ErrUserHasTasks when the target still owns
	// tasks.
	DeleteUser(ctx context.Context, actor *domain.User, id int64) error
	// TaskAnalytics returns the top 10 users by owned task count.
	TaskAnalytics(ctx context.Context, actor *domain.User) ([]UserSummary, error)
	// UpcomingDeadlines returns the 10 incomplete tasks due soonest, across
	// all users.
	UpcomingDeadlines(ctx context.Context, actor *domain.User) ([]domain.Task, error)
	// MyUpcomingDeadlines returns the actor's own 2 incomplete tasks due
	// soonest.
	MyUpcomingDeadlines(ctx context.Context, actor *domain.User) ([]domain.Task, error)
}
