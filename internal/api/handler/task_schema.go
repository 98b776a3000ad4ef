package handler

import (
	"time"

	"github.com/taskhive/task-system/internal/core/domain"
)

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=255"`
	Deadline    string `json:"deadline"    validate:"required"`
	Priority    string `json:"priority"    validate:"required,oneof=low normal high"`
	Category    string `json:"category"    validate:"required,max=100"`
}

// updateTaskRequest carries a partial update: absent fields stay untouched.
type updateTaskRequest struct {
	Title       *string `json:"title"        validate:"omitempty,max=255"`
	Description *string `json:"description"  validate:"omitempty,max=255"`
	Deadline    *string `json:"deadline"`
	Priority    *string `json:"priority"     validate:"omitempty,oneof=low normal high"`
	Category    *string `json:"category"     validate:"omitempty,max=100"`
	IsCompleted *bool   `json:"is_completed"`
}

// deadlineFormats are the accepted deadline layouts, tried in order.
var deadlineFormats = []string{time.RFC3339, "2006-01-02"}

// parseDeadline parses a deadline string, returning a field-level validation
// error when no layout matches.
func parseDeadline(s string) (time.Time, error) {
	for _, layout := range deadlineFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError("deadline", "deadline must be a valid date")
}
