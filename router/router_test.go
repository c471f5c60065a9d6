package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/config"
	"github.com/NomadCrew/nomad-crew-itinerary/handlers"
	"github.com/NomadCrew/nomad-crew-itinerary/services"
	"github.com/NomadCrew/nomad-crew-itinerary/store"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type denyAfter struct{ n, calls int }

func (d *denyAfter) CheckLimit(_ context.Context, _ string, limit int, window time.Duration) (services.LimitResult, error) {
	d.calls++
	if d.calls > d.n {
		return services.LimitResult{Allowed: false, RetryAfter: window}, nil
	}
	return services.LimitResult{Allowed: true, Remaining: limit - d.calls}, nil
}

type fakeItineraries struct{}

func (fakeItineraries) Generate(context.Context, string, types.TravelRequest) (*types.GeneratedItinerary, error) {
	return &types.GeneratedItinerary{}, nil
}

func (fakeItineraries) History(context.Context, string, int, int) (*types.HistoryPage, error) {
	return &types.HistoryPage{Items: []types.ItinerarySummary{}}, nil
}

func (fakeItineraries) Get(context.Context, string, string) (*types.ItineraryRecord, error) {
	return nil, store.ErrNotFound
}

func (fakeItineraries) Delete(context.Context, string, string) error { return store.ErrNotFound }

type fakeTasks struct{}

func (fakeTasks) Enqueue(context.Context, string, types.TravelRequest) (*types.GenerationTask, error) {
	return &types.GenerationTask{ID: "t-1", Status: types.TaskStatusPending}, nil
}

func (fakeTasks) Get(context.Context, string, string) (*types.GenerationTask, error) {
	return nil, store.ErrNotFound
}

type fakePhotos struct{}

func (fakePhotos) PlaceImages(context.Context, string, int) []string { return []string{} }
func (fakePhotos) CoverImage(context.Context, string, string) string  { return "" }

type fakeHealth struct{}

func (fakeHealth) CheckHealth(context.Context) types.HealthCheck {
	return types.HealthCheck{Status: types.HealthStatusUp}
}
func (fakeHealth) CheckLiveness() types.HealthCheck {
	return types.HealthCheck{Status: types.HealthStatusUp}
}

func newTestRouter(limiter services.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:    config.ServerConfig{Environment: config.EnvDevelopment, AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{GenerateRequests: 2, WindowSeconds: 60},
	}
	return SetupRouter(Dependencies{
		Config:           cfg,
		RateLimiter:      limiter,
		ItineraryHandler: handlers.NewItineraryHandler(fakeItineraries{}),
		TaskHandler:      handlers.NewTaskHandler(fakeTasks{}, &cfg.Server),
		PhotoHandler:     handlers.NewPhotoHandler(fakePhotos{}),
		HealthHandler:    handlers.NewHealthHandler(fakeHealth{}),
	})
}

func TestSetupRouter_Routes(t *testing.T) {
	r := newTestRouter(&denyAfter{n: 100})

	tests := []struct {
		method string
		path   string
		owner  string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/health/liveness", "", http.StatusOK},
		{http.MethodGet, "/health/readiness", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/v1/photos/place?name=x", "", http.StatusOK},
		{http.MethodGet, "/v1/photos/destination?location=x", "", http.StatusOK},
		{http.MethodGet, "/v1/itineraries/history", "", http.StatusBadRequest},
		{http.MethodGet, "/v1/itineraries/history", "user-1", http.StatusOK},
		{http.MethodGet, "/v1/itineraries/history/abc", "user-1", http.StatusNotFound},
		{http.MethodGet, "/v1/itineraries/tasks/abc", "", http.StatusNotFound},
		{http.MethodGet, "/v1/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.owner != "" {
				req.Header.Set("X-Owner-ID", tt.owner)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestSetupRouter_GenerateRoutesAreRateLimited(t *testing.T) {
	r := newTestRouter(&denyAfter{n: 1})
	body := []byte(`{"destination":"上海"}`)

	post := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, post("/v1/itineraries"))
	assert.Equal(t, http.StatusTooManyRequests, post("/v1/itineraries/tasks"))
}
