package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"costream/internal/core/domain"
	"costream/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

type RedisCollaboratorRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisCollaboratorRepository(client *redis.Client) ports.CollaboratorRepository {
	return &RedisCollaboratorRepository{
		client: client,
		prefix: "costream:collaborator:",
	}
}

func (r *RedisCollaboratorRepository) collabKey(id domain.CollaboratorID) string {
	return r.prefix + string(id)
}

func (r *RedisCollaboratorRepository) eventIndexKey(eventID domain.EventID) string {
	return r.prefix + "event:" + string(eventID)
}

func (r *RedisCollaboratorRepository) Create(ctx context.Context, collab *domain.Collaborator) error {
	data, err := json.Marshal(collab)
	if err != nil {
		return fmt.Errorf("failed to marshal collaborator: %w", err)
	}

	key := r.collabKey(collab.ID)
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set collaborator in Redis: %w", err)
	}

	if err := r.client.SAdd(ctx, r.eventIndexKey(collab.EventID), string(collab.ID)).Err(); err != nil {
		return fmt.Errorf("failed to index collaborator by event: %w", err)
	}

	return nil
}

func (r *RedisCollaboratorRepository) FindByEvent(ctx context.Context, eventID domain.EventID) ([]*domain.Collaborator, error) {
	collabIDs, err := r.client.SMembers(ctx, r.eventIndexKey(eventID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get collaborators for event from Redis: %w", err)
	}

	var collaborators []*domain.Collaborator
	for _, idStr := range collabIDs {
		collab, err := r.getByID(ctx, domain.CollaboratorID(idStr))
		if err != nil {
			// Skip collaborators that no longer exist
			continue
		}
		collaborators = append(collaborators, collab)
	}

	return collaborators, nil
}

func (r *RedisCollaboratorRepository) FindByEventAndUser(ctx context.Context, eventID domain.EventID, userID domain.UserID) (*domain.Collaborator, error) {
	collaborators, err := r.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	for _, collab := range collaborators {
		if collab.UserID == userID {
			return collab, nil
		}
	}

	return nil, domain.ErrCollaboratorNotFound
}

func (r *RedisCollaboratorRepository) getByID(ctx context.Context, id domain.CollaboratorID) (*domain.Collaborator, error) {
	data, err := r.client.Get(ctx, r.collabKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrCollaboratorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collaborator from Redis: %w", err)
	}

	var collab domain.Collaborator
	if err := json.Unmarshal([]byte(data), &collab); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collaborator: %w", err)
	}

	return &collab, nil
}
