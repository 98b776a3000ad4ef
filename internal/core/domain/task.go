package domain

import "time"

// TaskPriority is the urgency level assigned to a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityNormal TaskPriority = "normal"
	PriorityHigh   TaskPriority = "high"
)

// IsValid reports whether the priority is one of the known levels.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Task is a to-do item owned by exactly one user. The owner is fixed at
// creation time and never changes afterwards.
type Task struct {
	ID          int64        `json:"id" bson:"_id"`
	UserID      int64        `json:"user_id" bson:"user_id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Deadline    time.Time    `json:"deadline" bson:"deadline"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	Category    string       `json:"category" bson:"category"`
	IsCompleted bool         `json:"is_completed" bson:"is_completed"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}
