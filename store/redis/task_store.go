package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/store"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/redis/go-redis/v9"
)

const taskKeyPrefix = "itinerary:task:"

// Ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

// TaskStore keeps generation tasks as JSON strings with a TTL. Every write
// refreshes the TTL, so a task lives ttl past its last transition.
type TaskStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewTaskStore(rdb redis.Cmdable, ttl time.Duration) *TaskStore {
	return &TaskStore{rdb: rdb, ttl: ttl}
}

func taskKey(id string) string {
	return taskKeyPrefix + id
}

func (s *TaskStore) Create(ctx context.Context, task *types.GenerationTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task: %w", err)
	}
	ok, err := s.rdb.SetNX(ctx, taskKey(task.ID), string(payload), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	if !ok {
		return store.ErrConflict
	}
	return nil
}

func (s *TaskStore) Get(ctx context.Context, id string) (*types.GenerationTask, error) {
	raw, err := s.rdb.Get(ctx, taskKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	var task types.GenerationTask
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return &task, nil
}

func (s *TaskStore) Update(ctx context.Context, task *types.GenerationTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task: %w", err)
	}
	ok, err := s.rdb.SetXX(ctx, taskKey(task.ID), string(payload), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if !ok {
		return store.ErrNotFound
	}
	return nil
}
