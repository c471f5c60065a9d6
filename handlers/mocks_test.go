package handlers

import (
	"context"

	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/stretchr/testify/mock"
)

type MockItineraryService struct {
	mock.Mock
}

func (m *MockItineraryService) Generate(ctx context.Context, ownerID string, req types.TravelRequest) (*types.GeneratedItinerary, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GeneratedItinerary), args.Error(1)
}

func (m *MockItineraryService) History(ctx context.Context, ownerID string, limit, offset int) (*types.HistoryPage, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.HistoryPage), args.Error(1)
}

func (m *MockItineraryService) Get(ctx context.Context, ownerID, id string) (*types.ItineraryRecord, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ItineraryRecord), args.Error(1)
}

func (m *MockItineraryService) Delete(ctx context.Context, ownerID, id string) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Enqueue(ctx context.Context, ownerID string, req types.TravelRequest) (*types.GenerationTask, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GenerationTask), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, ownerID, id string) (*types.GenerationTask, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GenerationTask), args.Error(1)
}

type MockPhotoSearcher struct {
	mock.Mock
}

func (m *MockPhotoSearcher) PlaceImages(ctx context.Context, place string, count int) []string {
	args := m.Called(ctx, place, count)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockPhotoSearcher) CoverImage(ctx context.Context, location, kind string) string {
	return m.Called(ctx, location, kind).String(0)
}

type stubHealth struct {
	health types.HealthCheck
}

func (s stubHealth) CheckHealth(context.Context) types.HealthCheck { return s.health }

func (s stubHealth) CheckLiveness() types.HealthCheck {
	return types.HealthCheck{Status: types.HealthStatusUp}
}

func sampleItinerary() types.Itinerary {
	return types.Itinerary{
		Overview: types.BudgetOverview{
			TotalBudget:     3000,
			BudgetBreakdown: []types.BudgetItem{{Category: "住宿", Amount: 1200}},
		},
		DailyPlans: []types.DailyPlan{{
			Day:   1,
			Title: "Day 1: 外滩",
			Activities: []types.Activity{{
				Time:   "09:00",
				Title:  "外滩",
				Cost:   0,
				Images: []string{"https://images.unsplash.com/photo-abc?w=1080"},
			}},
		}},
		HiddenGems:    []types.HiddenGem{},
		PracticalTips: types.PracticalTips{PackingList: []string{}},
	}
}
