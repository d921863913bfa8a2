package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"costream/internal/core/domain"
	"costream/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

type RedisEventRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisEventRepository(client *redis.Client) ports.EventRepository {
	return &RedisEventRepository{
		client: client,
		prefix: "costream:event:",
	}
}

func (r *RedisEventRepository) eventKey(id domain.EventID) string {
	return r.prefix + string(id)
}

func (r *RedisEventRepository) statusKey(status domain.EventStatus) string {
	return r.prefix + "status:" + string(status)
}

func (r *RedisEventRepository) Create(ctx context.Context, event *domain.StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	key := r.eventKey(event.ID)
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set event in Redis: %w", err)
	}

	if err := r.client.SAdd(ctx, r.statusKey(event.Status), string(event.ID)).Err(); err != nil {
		return fmt.Errorf("failed to add event to status set: %w", err)
	}

	return nil
}

func (r *RedisEventRepository) GetByID(ctx context.Context, id domain.EventID) (*domain.StreamEvent, error) {
	key := r.eventKey(id)
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event from Redis: %w", err)
	}

	var event domain.StreamEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}

func (r *RedisEventRepository) ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.StreamEvent, error) {
	eventIDs, err := r.client.SMembers(ctx, r.statusKey(status)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get events by status from Redis: %w", err)
	}

	var events []*domain.StreamEvent
	for _, idStr := range eventIDs {
		event, err := r.GetByID(ctx, domain.EventID(idStr))
		if err != nil {
			// Skip events that no longer exist
			continue
		}
		if event.Status == status {
			events = append(events, event)
		}
	}

	return events, nil
}
