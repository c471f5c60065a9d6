package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/config"
	"github.com/NomadCrew/nomad-crew-itinerary/middleware"
	"github.com/NomadCrew/nomad-crew-itinerary/services"
	"github.com/NomadCrew/nomad-crew-itinerary/store"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const testTaskID = "0f9a3c52-8d1e-4b7a-a1c4-5e6f7a8b9c0d"

func newTaskRouter(h *TaskHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(), middleware.OwnerIDMiddleware())
	tasks := r.Group("/v1/itineraries/tasks")
	tasks.POST("", h.CreateTaskHandler)
	tasks.GET("/:taskId", h.GetTaskHandler)
	tasks.GET("/:taskId/ws", h.TaskStreamHandler)
	return r
}

func devServerConfig() *config.ServerConfig {
	return &config.ServerConfig{Environment: config.EnvDevelopment}
}

func taskWithStatus(status types.TaskStatus, at time.Time) *types.GenerationTask {
	return &types.GenerationTask{
		ID:        testTaskID,
		Status:    status,
		Request:   types.TravelRequest{Destination: "上海", Days: 2, Travelers: 2},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestCreateTaskHandler(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		svc := new(MockTaskService)
		svc.On("Enqueue", mock.Anything, "user-1", mock.AnythingOfType("types.TravelRequest")).
			Return(taskWithStatus(types.TaskStatusPending, time.Now()), nil)

		w := postJSON(newTaskRouter(NewTaskHandler(svc, devServerConfig())), "/v1/itineraries/tasks",
			types.TravelRequest{Destination: "上海"}, "user-1")

		require.Equal(t, http.StatusAccepted, w.Code)
		var resp types.TaskAccepted
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, testTaskID, resp.TaskID)
		assert.Equal(t, types.TaskStatusPending, resp.Status)
	})

	t.Run("queue full", func(t *testing.T) {
		svc := new(MockTaskService)
		svc.On("Enqueue", mock.Anything, "", mock.Anything).
			Return(taskWithStatus(types.TaskStatusFailed, time.Now()), fmt.Errorf("submit task: %w", services.ErrQueueFull))

		w := postJSON(newTaskRouter(NewTaskHandler(svc, devServerConfig())), "/v1/itineraries/tasks",
			types.TravelRequest{Destination: "上海"}, "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "SERVICE_UNAVAILABLE")
	})
}

func TestGetTaskHandler(t *testing.T) {
	svc := new(MockTaskService)
	done := taskWithStatus(types.TaskStatusCompleted, time.Now())
	it := sampleItinerary()
	done.Result = &it
	svc.On("Get", mock.Anything, "", testTaskID).Return(done, nil)
	svc.On("Get", mock.Anything, "", "expired").Return(nil, store.ErrNotFound)
	r := newTaskRouter(NewTaskHandler(svc, devServerConfig()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/itineraries/tasks/"+testTaskID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp types.GenerationTask
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.TaskStatusCompleted, resp.Status)
	require.NotNil(t, resp.Result)
	assert.Len(t, resp.Result.DailyPlans, 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/itineraries/tasks/expired", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Task not found")
}

func TestTaskStreamHandler(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := new(MockTaskService)
	svc.On("Get", mock.Anything, "", testTaskID).Return(taskWithStatus(types.TaskStatusPending, t0), nil).Once()
	svc.On("Get", mock.Anything, "", testTaskID).Return(taskWithStatus(types.TaskStatusPending, t0), nil).Once()
	svc.On("Get", mock.Anything, "", testTaskID).Return(taskWithStatus(types.TaskStatusProcessing, t0.Add(time.Second)), nil).Once()
	svc.On("Get", mock.Anything, "", testTaskID).Return(taskWithStatus(types.TaskStatusCompleted, t0.Add(5*time.Second)), nil)

	h := NewTaskHandler(svc, devServerConfig())
	h.pollInterval = 10 * time.Millisecond
	srv := httptest.NewServer(newTaskRouter(h))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/itineraries/tasks/" + testTaskID + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	var statuses []types.TaskStatus
	for {
		var msg TaskMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			assert.Equal(t, websocket.StatusNormalClosure, websocket.CloseStatus(err))
			break
		}
		require.Equal(t, "task", msg.Type)
		statuses = append(statuses, msg.Payload.Status)
	}

	// The unchanged pending poll is not re-sent.
	assert.Equal(t, []types.TaskStatus{
		types.TaskStatusPending,
		types.TaskStatusProcessing,
		types.TaskStatusCompleted,
	}, statuses)
}

func TestTaskStreamHandler_UnknownTask(t *testing.T) {
	svc := new(MockTaskService)
	svc.On("Get", mock.Anything, "", "nope").Return(nil, store.ErrNotFound)
	r := newTaskRouter(NewTaskHandler(svc, devServerConfig()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/itineraries/tasks/nope/ws", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_AcceptOptions(t *testing.T) {
	h := NewTaskHandler(new(MockTaskService), &config.ServerConfig{
		Environment:    config.EnvProduction,
		AllowedOrigins: []string{"https://app.travel.example", "*.travel.example"},
	})
	opts := h.acceptOptions()
	assert.False(t, opts.InsecureSkipVerify)
	assert.Equal(t, []string{"app.travel.example", "*.travel.example"}, opts.OriginPatterns)

	h = NewTaskHandler(new(MockTaskService), &config.ServerConfig{
		Environment:    config.EnvProduction,
		AllowedOrigins: []string{"*"},
	})
	assert.True(t, h.acceptOptions().InsecureSkipVerify)
}
