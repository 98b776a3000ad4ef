package ports

import (
	"context"
	"time"

	"github.com/taskhive/task-system/internal/core/domain"
)

// TaskFilter carries the optional query parameters for listing tasks.
// All filters are conjunctive; empty values impose no constraint.
type TaskFilter struct {
	Category string
	Priority string
	// Status is "completed" or "pending"; any other value is ignored.
	Status string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	// Create inserts a new task and returns it with its assigned id.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// FindByID returns domain.ErrTaskNotFound when no task matches.
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	// FindByOwner returns the owner's tasks matching the filter,
	// newest-created first.
	FindByOwner(ctx context.Context, ownerID int64, filter TaskFilter) ([]domain.Task, error)
	// Update persists the full task document (last write wins).
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
	// CountsByOwner returns the number of tasks owned by each user.
	CountsByOwner(ctx context.Context) (map[int64]int64, error)
	// FindDueOn returns incomplete tasks whose deadline falls within the
	// calendar day starting at dayStart.
	FindDueOn(ctx context.Context, dayStart time.Time) ([]domain.Task, error)
	// FindUpcoming returns incomplete tasks with a deadline at or after now,
	// soonest first, capped at limit. ownerID 0 means all owners.
	FindUpcoming(ctx context.Context, ownerID int64, now time.Time, limit int) ([]domain.Task, error)
}
