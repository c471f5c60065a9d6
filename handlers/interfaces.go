package handlers

import (
	"context"

	"github.com/NomadCrew/nomad-crew-itinerary/types"
)

// ItineraryServiceInterface is the synchronous generation and history API
// used by ItineraryHandler.
type ItineraryServiceInterface interface {
	Generate(ctx context.Context, ownerID string, req types.TravelRequest) (*types.GeneratedItinerary, error)
	History(ctx context.Context, ownerID string, limit, offset int) (*types.HistoryPage, error)
	Get(ctx context.Context, ownerID, id string) (*types.ItineraryRecord, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// TaskServiceInterface queues and reads asynchronous generations.
type TaskServiceInterface interface {
	Enqueue(ctx context.Context, ownerID string, req types.TravelRequest) (*types.GenerationTask, error)
	Get(ctx context.Context, ownerID, id string) (*types.GenerationTask, error)
}

// PhotoSearcher looks up standalone place and destination photos.
type PhotoSearcher interface {
	PlaceImages(ctx context.Context, place string, count int) []string
	CoverImage(ctx context.Context, location, kind string) string
}

// HealthChecker reports service health.
type HealthChecker interface {
	CheckHealth(ctx context.Context) types.HealthCheck
	CheckLiveness() types.HealthCheck
}
