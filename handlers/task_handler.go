package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/config"
	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/middleware"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	defaultStreamPollInterval = time.Second
	streamWriteTimeout        = 10 * time.Second
	// maxStreamDuration ends a stream whose task never settles, for example
	// after its Redis entry expired mid-run.
	maxStreamDuration = 15 * time.Minute
)

// TaskMessage is one frame on the task status stream.
type TaskMessage struct {
	Type    string                `json:"type"`
	Payload *types.GenerationTask `json:"payload,omitempty"`
	Error   string                `json:"error,omitempty"`
}

type TaskHandler struct {
	service        TaskServiceInterface
	log            *zap.SugaredLogger
	pollInterval   time.Duration
	allowedOrigins []string
	isDevelopment  bool
}

func NewTaskHandler(service TaskServiceInterface, serverCfg *config.ServerConfig) *TaskHandler {
	return &TaskHandler{
		service:        service,
		log:            logger.GetLogger().Named("task-handler"),
		pollInterval:   defaultStreamPollInterval,
		allowedOrigins: serverCfg.AllowedOrigins,
		isDevelopment:  serverCfg.Environment == config.EnvDevelopment,
	}
}

// CreateTaskHandler godoc
// @Summary Queue an itinerary generation
// @Description Validates the request and generates in the background. Poll the task or open its websocket stream for the result.
// @Tags tasks
// @Accept json
// @Produce json
// @Param X-Owner-ID header string false "Owner id used for history"
// @Param request body types.TravelRequest true "Travel request"
// @Success 202 {object} types.TaskAccepted
// @Failure 400 {object} types.ErrorResponse "Invalid travel request"
// @Failure 429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure 503 {object} types.ErrorResponse "Queue full"
// @Router /v1/itineraries/tasks [post]
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	var req types.TravelRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	task, err := h.service.Enqueue(c.Request.Context(), middleware.OwnerID(c), req)
	if err != nil {
		abortWithError(c, err, "Task", "")
		return
	}
	c.JSON(http.StatusAccepted, types.TaskAccepted{TaskID: task.ID, Status: task.Status})
}

// GetTaskHandler godoc
// @Summary Get a generation task
// @Tags tasks
// @Produce json
// @Param X-Owner-ID header string false "Owner id the task was created with"
// @Param taskId path string true "Task id"
// @Success 200 {object} types.GenerationTask
// @Failure 404 {object} types.ErrorResponse "Unknown or expired task"
// @Router /v1/itineraries/tasks/{taskId} [get]
func (h *TaskHandler) GetTaskHandler(c *gin.Context) {
	id := c.Param("taskId")
	task, err := h.service.Get(c.Request.Context(), middleware.OwnerID(c), id)
	if err != nil {
		abortWithError(c, err, "Task", id)
		return
	}
	c.JSON(http.StatusOK, task)
}

// TaskStreamHandler godoc
// @Summary Stream task status
// @Description Upgrades to a websocket and sends a task frame on every status change until the task completes or fails.
// @Tags tasks
// @Param X-Owner-ID header string false "Owner id the task was created with"
// @Param taskId path string true "Task id"
// @Success 101
// @Failure 404 {object} types.ErrorResponse "Unknown or expired task"
// @Router /v1/itineraries/tasks/{taskId}/ws [get]
func (h *TaskHandler) TaskStreamHandler(c *gin.Context) {
	id := c.Param("taskId")
	ownerID := middleware.OwnerID(c)

	// Resolve the task before upgrading so unknown ids get a plain 404.
	task, err := h.service.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		abortWithError(c, err, "Task", id)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, h.acceptOptions())
	if err != nil {
		h.log.Warnw("Failed to accept task stream", "taskId", id, "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")

	// The client only listens; CloseRead handles its control frames and
	// cancels ctx when it goes away.
	ctx := conn.CloseRead(c.Request.Context())
	ctx, cancel := context.WithTimeout(ctx, maxStreamDuration)
	defer cancel()

	if err := h.stream(ctx, conn, ownerID, task); err != nil {
		if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
			h.log.Warnw("Task stream failed", "taskId", id, "error", err)
		}
		return
	}
	_ = conn.Close(websocket.StatusNormalClosure, string(task.Status))
}

// stream writes task snapshots until a terminal state. task is updated in
// place with the last snapshot sent.
func (h *TaskHandler) stream(ctx context.Context, conn *websocket.Conn, ownerID string, task *types.GenerationTask) error {
	if err := h.write(ctx, conn, TaskMessage{Type: "task", Payload: task}); err != nil {
		return err
	}

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	for !task.Status.IsTerminal() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		next, err := h.service.Get(ctx, ownerID, task.ID)
		if err != nil {
			_ = h.write(ctx, conn, TaskMessage{Type: "error", Error: "task is no longer available"})
			return err
		}
		if next.Status == task.Status && next.UpdatedAt.Equal(task.UpdatedAt) {
			continue
		}
		*task = *next
		if err := h.write(ctx, conn, TaskMessage{Type: "task", Payload: task}); err != nil {
			return err
		}
	}
	return nil
}

func (h *TaskHandler) write(ctx context.Context, conn *websocket.Conn, msg TaskMessage) error {
	writeCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, conn, msg)
}

// acceptOptions allows any origin in development and the configured
// origins' hosts otherwise.
func (h *TaskHandler) acceptOptions() *websocket.AcceptOptions {
	opts := &websocket.AcceptOptions{}
	if h.isDevelopment || len(h.allowedOrigins) == 0 {
		opts.InsecureSkipVerify = true
		return opts
	}
	for _, o := range h.allowedOrigins {
		if o == "*" {
			opts.InsecureSkipVerify = true
			return opts
		}
		if i := strings.Index(o, "://"); i != -1 {
			o = o[i+3:]
		}
		opts.OriginPatterns = append(opts.OriginPatterns, o)
	}
	return opts
}
