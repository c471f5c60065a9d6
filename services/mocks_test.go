package services

import (
	"context"
	"sync"

	"github.com/NomadCrew/nomad-crew-itinerary/store"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/stretchr/testify/mock"
)

type mockItineraryStore struct {
	mock.Mock
}

func (m *mockItineraryStore) Save(ctx context.Context, rec *types.ItineraryRecord) error {
	args := m.Called(ctx, rec)
	if args.Error(0) == nil && rec.ID == "" {
		rec.ID = "5b1f0a52-8f3e-4d2a-9c61-0e7d3b2a1f90"
	}
	return args.Error(0)
}

func (m *mockItineraryStore) Get(ctx context.Context, ownerID, id string) (*types.ItineraryRecord, error) {
	args := m.Called(ctx, ownerID, id)
	if rec, ok := args.Get(0).(*types.ItineraryRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItineraryStore) List(ctx context.Context, ownerID string, limit, offset int) (*types.HistoryPage, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if page, ok := args.Get(0).(*types.HistoryPage); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItineraryStore) Delete(ctx context.Context, ownerID, id string) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type fakeGenerator struct {
	it  *types.Itinerary
	err error

	mu   sync.Mutex
	reqs []types.TravelRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req types.TravelRequest) (*types.Itinerary, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cp := *f.it
	return &cp, nil
}

// memTaskStore is an in-memory store.TaskStore that records every status
// it was written with.
type memTaskStore struct {
	mu       sync.Mutex
	tasks    map[string]types.GenerationTask
	statuses []types.TaskStatus
	updated  chan types.GenerationTask
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{
		tasks:   map[string]types.GenerationTask{},
		updated: make(chan types.GenerationTask, 16),
	}
}

func (m *memTaskStore) Create(_ context.Context, task *types.GenerationTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.ID]; ok {
		return store.ErrConflict
	}
	m.tasks[task.ID] = *task
	m.statuses = append(m.statuses, task.Status)
	return nil
}

func (m *memTaskStore) Get(_ context.Context, id string) (*types.GenerationTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &task, nil
}

func (m *memTaskStore) Update(ctx context.Context, task *types.GenerationTask) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	if _, ok := m.tasks[task.ID]; !ok {
		m.mu.Unlock()
		return store.ErrNotFound
	}
	m.tasks[task.ID] = *task
	m.statuses = append(m.statuses, task.Status)
	m.mu.Unlock()

	m.updated <- *task
	return nil
}

func (m *memTaskStore) recorded() []types.TaskStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.TaskStatus(nil), m.statuses...)
}

// syncSubmitter runs jobs inline, or rejects them with err.
type syncSubmitter struct {
	err error
}

func (s syncSubmitter) Submit(job Job) error {
	if s.err != nil {
		return s.err
	}
	_ = job.Execute(context.Background())
	return nil
}

func sampleItinerary() *types.Itinerary {
	return &types.Itinerary{
		Overview: types.BudgetOverview{TotalBudget: 8000, BudgetBreakdown: []types.BudgetItem{}},
		DailyPlans: []types.DailyPlan{{
			Day:        1,
			Title:      "Day 1",
			Activities: []types.Activity{{Title: "外滩", Images: []string{}}},
		}},
		HiddenGems:    []types.HiddenGem{},
		PracticalTips: types.PracticalTips{PackingList: []string{}},
	}
}
