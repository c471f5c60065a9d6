package services

import (
	"context"
	"fmt"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/store"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Generator produces an enriched itinerary. Implemented by planner.Generator.
type Generator interface {
	Generate(ctx context.Context, req types.TravelRequest) (*types.Itinerary, error)
}

// ItineraryService runs generations and manages an owner's saved history.
type ItineraryService struct {
	generator Generator
	store     store.ItineraryStore
	log       *zap.SugaredLogger
}

func NewItineraryService(generator Generator, itineraries store.ItineraryStore) *ItineraryService {
	return &ItineraryService{
		generator: generator,
		store:     itineraries,
		log:       logger.GetLogger().Named("itinerary-service"),
	}
}

// Generate runs the pipeline and, when ownerID is set, saves the result.
// A failed save is logged and reported through Saved rather than failing
// the generation.
func (s *ItineraryService) Generate(ctx context.Context, ownerID string, req types.TravelRequest) (*types.GeneratedItinerary, error) {
	req = req.Normalize()
	it, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &types.GeneratedItinerary{Itinerary: *it}
	if ownerID == "" {
		return out, nil
	}

	rec := &types.ItineraryRecord{OwnerID: ownerID, Request: req, Itinerary: *it}
	if err := s.store.Save(ctx, rec); err != nil {
		s.log.Warnw("Failed to save generated itinerary", logger.OwnerIDKey, ownerID, "destination", req.Destination, "error", err)
		return out, nil
	}
	out.ID = rec.ID
	out.Saved = true
	return out, nil
}

// History returns one page of summaries. limit defaults to 20 and is capped
// at 100; a negative offset is treated as 0.
func (s *ItineraryService) History(ctx context.Context, ownerID string, limit, offset int) (*types.HistoryPage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	page, err := s.store.List(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return page, nil
}

func (s *ItineraryService) Get(ctx context.Context, ownerID, id string) (*types.ItineraryRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, store.ErrNotFound
	}
	return s.store.Get(ctx, ownerID, id)
}

func (s *ItineraryService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.ErrNotFound
	}
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.log.Infow("Itinerary deleted", "itineraryId", id, logger.OwnerIDKey, ownerID)
	return nil
}
