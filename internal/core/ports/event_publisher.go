package ports

import "context"

// EventPublisher broadcasts domain events to per-user private channels.
// Delivery beyond the broker is out of scope.
type EventPublisher interface {
	// PublishNameChanged announces that a user's display name was updated.
	PublishNameChanged(ctx context.Context, userID int64, name string) error
}
