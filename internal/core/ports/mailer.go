package ports

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
)

// Mailer sends outbound notification email.
type Mailer interface {
	// SendTaskReminder delivers a deadline reminder for the task to the
	// owner's address.
	SendTaskReminder(ctx context.Context, to, ownerName string, task *domain.Task) error
}
