package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Topics mirror what the web clients subscribe to.
const (
	TopicAdmin            = "notifications:admin"
	TopicOwnerRequests    = "owner-requests"
	TopicVehicleSubmitted = "vehicle-submitted"
)

func UserTopic(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:user:%s", userID)
}

// Publisher pushes a payload to everyone currently subscribed to a topic.
// Delivery is best-effort: there is no ack and no retry, the persisted
// notification record is the source of truth.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

type redisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	if p.client == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", topic, err)
	}
	return p.client.Publish(ctx, topic, data).Err()
}
