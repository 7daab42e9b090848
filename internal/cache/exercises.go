package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fitx/api/internal/models"
)

const exerciseListKey = "fitx:exercises:all"

// ExerciseCache stores the full catalog listing as one JSON value.
type ExerciseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewExerciseCache(client *redis.Client, ttl time.Duration) *ExerciseCache {
	return &ExerciseCache{client: client, ttl: ttl}
}

func (c *ExerciseCache) GetExercises(ctx context.Context) ([]models.Exercise, bool, error) {
	raw, err := c.client.Get(ctx, exerciseListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", exerciseListKey, err)
	}

	var exercises []models.Exercise
	if err := json.Unmarshal(raw, &exercises); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", exerciseListKey, err)
	}
	return exercises, true, nil
}

func (c *ExerciseCache) SetExercises(ctx context.Context, exercises []models.Exercise) error {
	raw, err := json.Marshal(exercises)
	if err != nil {
		return fmt.Errorf("encode %s: %w", exerciseListKey, err)
	}
	return c.client.Set(ctx, exerciseListKey, raw, c.ttl).Err()
}

func (c *ExerciseCache) InvalidateExercises(ctx context.Context) error {
	return c.client.Del(ctx, exerciseListKey).Err()
}
