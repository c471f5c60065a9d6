package services

import (
	"context"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	healthCheckTimeout = 2 * time.Second
	// queueDegradedRatio is the queue fill level reported as degraded.
	queueDegradedRatio = 0.8
)

// DatabasePinger is satisfied by *pgxpool.Pool and pgxmock pools.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// WorkerStatus is the view of the worker pool the health check needs.
type WorkerStatus interface {
	IsRunning() bool
	QueueDepth() int
	Capacity() int
}

type HealthService struct {
	db        DatabasePinger
	redis     redis.Cmdable
	workers   WorkerStatus
	version   string
	startTime time.Time
	log       *zap.SugaredLogger
}

// NewHealthService builds the readiness checker. workers may be nil.
func NewHealthService(db DatabasePinger, rdb redis.Cmdable, workers WorkerStatus, version string) *HealthService {
	return &HealthService{
		db:        db,
		redis:     rdb,
		workers:   workers,
		version:   version,
		startTime: time.Now(),
		log:       logger.GetLogger().Named("health"),
	}
}

// CheckHealth reports every dependency; the overall status is the worst
// component status.
func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := map[string]types.HealthComponent{
		types.HealthComponentDatabase: h.checkDatabase(ctx),
		types.HealthComponentRedis:    h.checkRedis(ctx),
	}
	if h.workers != nil {
		components[types.HealthComponentWorkers] = h.checkWorkers()
	}

	overall := types.HealthStatusUp
	for _, c := range components {
		overall = overall.Worse(c.Status)
	}

	return types.HealthCheck{
		Status:     overall,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
	}
}

// CheckLiveness only confirms the process is serving requests.
func (h *HealthService) CheckLiveness() types.HealthCheck {
	return types.HealthCheck{
		Status:     types.HealthStatusUp,
		Components: map[string]types.HealthComponent{},
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
	}
}

func (h *HealthService) checkDatabase(ctx context.Context) types.HealthComponent {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Errorw("Database health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Database connection failed",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Redis connection failed",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}

func (h *HealthService) checkWorkers() types.HealthComponent {
	if !h.workers.IsRunning() {
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Worker pool is not running",
		}
	}
	if c := h.workers.Capacity(); c > 0 && float64(h.workers.QueueDepth()) >= float64(c)*queueDegradedRatio {
		return types.HealthComponent{
			Status:  types.HealthStatusDegraded,
			Details: "Generation queue near capacity",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}
