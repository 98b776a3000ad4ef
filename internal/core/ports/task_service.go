package ports

import (
	"context"
	"time"

	"github.com/taskhive/task-system/internal/core/domain"
)

// CreateTaskInput carries the fields for creating a task. The owner is taken
// from the authenticated actor, never from the payload.
type CreateTaskInput struct {
	Title       string
	Description string
	Deadline    time.Time
	Priority    domain.TaskPriority
	Category    string
}

// UpdateTaskInput carries a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	Priority    *domain.TaskPriority
	Category    *string
	IsCompleted *bool
}

// TaskService defines use-case operations for tasks. Authorization (owner or
// admin) is enforced at the handler boundary before these are invoked.
type TaskService interface {
	ListTasks(ctx context.Context, owner *domain.User, filter TaskFilter) ([]domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, owner *domain.User, in CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, task *domain.Task, in UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, task *domain.Task) error
	// CompleteTask marks the task completed. Completing an already completed
	// task is a no-op success; a task is never un-completed this way.
	CompleteTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
}
