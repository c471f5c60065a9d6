package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/internal/planner"
	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/store"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// taskWriteTimeout bounds status writes made after the job context is done.
const taskWriteTimeout = 5 * time.Second

// JobSubmitter queues background work. Implemented by *WorkerPool.
type JobSubmitter interface {
	Submit(job Job) error
}

// TaskService runs generations in the background and tracks them as tasks.
type TaskService struct {
	tasks       store.TaskStore
	pool        JobSubmitter
	itineraries *ItineraryService
	log         *zap.SugaredLogger
	now         func() time.Time
}

func NewTaskService(tasks store.TaskStore, pool JobSubmitter, itineraries *ItineraryService) *TaskService {
	return &TaskService{
		tasks:       tasks,
		pool:        pool,
		itineraries: itineraries,
		log:         logger.GetLogger().Named("task-service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Enqueue validates req, records a pending task and submits it. When the
// queue is full the task is marked failed and an error wrapping
// ErrQueueFull is returned.
func (s *TaskService) Enqueue(ctx context.Context, ownerID string, req types.TravelRequest) (*types.GenerationTask, error) {
	req = req.Normalize()
	if err := planner.ValidateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	task := &types.GenerationTask{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Status:    types.TaskStatusPending,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	taskID := task.ID
	err := s.pool.Submit(Job{
		Name:    "generate-itinerary:" + taskID,
		Execute: func(jobCtx context.Context) error { return s.run(jobCtx, taskID) },
	})
	if err != nil {
		s.finish(ctx, task, nil, err)
		return task, fmt.Errorf("submit task %s: %w", taskID, err)
	}

	s.log.Infow("Generation task queued", "taskId", taskID, "destination", req.Destination, logger.OwnerIDKey, ownerID)
	return task, nil
}

// Get returns a task. Tasks created with an owner are only visible to that
// owner.
func (s *TaskService) Get(ctx context.Context, ownerID, id string) (*types.GenerationTask, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, store.ErrNotFound
	}
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != "" && task.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return task, nil
}

func (s *TaskService) run(ctx context.Context, id string) error {
	task, err := s.tasks.Get(context.WithoutCancel(ctx), id)
	if err != nil {
		return fmt.Errorf("load task %s: %w", id, err)
	}

	task.Status = types.TaskStatusProcessing
	task.UpdatedAt = s.now()
	if err := s.tasks.Update(ctx, task); err != nil {
		s.log.Warnw("Failed to mark task processing", "taskId", id, "error", err)
	}

	res, genErr := s.itineraries.Generate(ctx, task.OwnerID, task.Request)
	s.finish(ctx, task, res, genErr)
	return genErr
}

// finish records the terminal state. It writes with a context detached
// from ctx so a cancelled job still reports its failure.
func (s *TaskService) finish(ctx context.Context, task *types.GenerationTask, res *types.GeneratedItinerary, genErr error) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), taskWriteTimeout)
	defer cancel()

	task.UpdatedAt = s.now()
	if genErr != nil {
		task.Status = types.TaskStatusFailed
		task.Error = taskErrorMessage(genErr)
	} else {
		task.Status = types.TaskStatusCompleted
		task.Result = &res.Itinerary
		task.ItineraryID = res.ID
	}

	if err := s.tasks.Update(writeCtx, task); err != nil {
		s.log.Errorw("Failed to record task result", "taskId", task.ID, "status", task.Status, "error", err)
		return
	}
	s.log.Infow("Generation task finished", "taskId", task.ID, "status", task.Status)
}

func taskErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrQueueFull):
		return "generation queue is full, please try again later"
	case errors.Is(err, ErrPoolStopped):
		return "service is shutting down, please try again"
	case errors.Is(err, context.DeadlineExceeded):
		return "generation timed out, please try again"
	case errors.Is(err, context.Canceled):
		return "generation was cancelled, please try again"
	}
	var ge *planner.GenerationError
	if errors.As(err, &ge) {
		return fmt.Sprintf("itinerary generation failed at %s stage, please try again", ge.Stage)
	}
	return "itinerary generation failed, please try again"
}
