package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each user's activities as a JSON list, newest at the head
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func activitiesKey(userID uuid.UUID) string {
	return fmt.Sprintf("activities:%s", userID.String())
}

func (s *RedisStore) Create(ctx context.Context, a *Activity) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode activity: %w", err)
	}

	if err := s.client.LPush(ctx, activitiesKey(a.UserID), data).Err(); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (s *RedisStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Activity, error) {
	items, err := s.client.LRange(ctx, activitiesKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	out := make([]Activity, 0, len(items))
	for _, item := range items {
		var a Activity
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			return nil, fmt.Errorf("failed to decode activity: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}
