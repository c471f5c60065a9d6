package store

import (
	"context"

	"github.com/NomadCrew/nomad-crew-itinerary/types"
)

// ItineraryStore persists generated itineraries. Every read and delete is
// scoped to the owner that saved the record.
type ItineraryStore interface {
	// Save inserts rec, filling in ID and timestamps.
	Save(ctx context.Context, rec *types.ItineraryRecord) error
	Get(ctx context.Context, ownerID, id string) (*types.ItineraryRecord, error)
	// List returns one page of summaries, newest first.
	List(ctx context.Context, ownerID string, limit, offset int) (*types.HistoryPage, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// TaskStore holds the state of asynchronous generations. Entries expire.
type TaskStore interface {
	Create(ctx context.Context, task *types.GenerationTask) error
	Get(ctx context.Context, id string) (*types.GenerationTask, error)
	Update(ctx context.Context, task *types.GenerationTask) error
}
