package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// EventPublisher broadcasts domain events over Redis Pub/Sub. Each user has
// a private channel; whatever realtime transport sits behind the broker is
// not this package's concern.
type EventPublisher struct {
	client *redis.Client
}

// NewEventPublisher creates an EventPublisher wrapping the given Redis client.
func NewEventPublisher(client *redis.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

type nameChangedPayload struct {
	Event  string `json:"event"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// PublishNameChanged announces a display-name update on the user's private
// channel.
func (p *EventPublisher) PublishNameChanged(ctx context.Context, userID int64, name string) error {
	payload, err := json.Marshal(nameChangedPayload{
		Event:  "user.name_updated",
		UserID: userID,
		Name:   name,
	})
	if err != nil {
		return fmt.Errorf("marshal name change: %w", err)
	}

	channel := fmt.Sprintf("private-user.%d", userID)
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish name change: %w", err)
	}
	return nil
}
