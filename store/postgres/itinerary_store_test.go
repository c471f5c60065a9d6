package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/store"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*ItineraryStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewItineraryStore(mock), mock
}

func testRecord() *types.ItineraryRecord {
	return &types.ItineraryRecord{
		OwnerID: "owner-1",
		Request: types.TravelRequest{
			AgentName:   "周末上海",
			Destination: "上海",
			Days:        2,
			Budget:      "3000元",
			Travelers:   2,
			Preferences: []string{"美食"},
		},
		Itinerary: types.Itinerary{
			Overview: types.BudgetOverview{TotalBudget: 3000},
			DailyPlans: []types.DailyPlan{{
				Day:        1,
				Activities: []types.Activity{{Title: "外滩", Images: []string{"https://images.pexels.com/photos/1/a.jpeg"}}},
			}},
		},
	}
}

func TestItineraryStore_Save(t *testing.T) {
	s, mock := newMockStore(t)
	rec := testRecord()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery("INSERT INTO itineraries").
		WithArgs(pgxmock.AnyArg(), "owner-1", "周末上海", "上海", 2, "3000元", 2,
			pgxmock.AnyArg(), "", pgxmock.AnyArg(), 3000.0).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, s.Save(context.Background(), rec))
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, now, rec.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryStore_SaveConflict(t *testing.T) {
	s, mock := newMockStore(t)
	rec := testRecord()
	rec.ID = "9d7c8a5e-4c3b-4a8e-9f6d-2b1a0c9e8d7f"

	mock.ExpectQuery("INSERT INTO itineraries").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := s.Save(context.Background(), rec)
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryStore_Get(t *testing.T) {
	s, mock := newMockStore(t)
	want := testRecord()
	doc, err := json.Marshal(want.Itinerary)
	require.NoError(t, err)
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM itineraries").
			WithArgs("it-1", "owner-1").
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "owner_id", "agent_name", "destination", "days", "budget", "travelers",
				"preferences", "extra_requirements", "itinerary", "created_at", "updated_at",
			}).AddRow(
				"it-1", "owner-1", "周末上海", "上海", 2, "3000元", 2,
				[]byte(`["美食"]`), "", doc, now, now,
			))

		got, err := s.Get(context.Background(), "owner-1", "it-1")
		require.NoError(t, err)
		assert.Equal(t, "it-1", got.ID)
		assert.Equal(t, []string{"美食"}, got.Request.Preferences)
		assert.Equal(t, want.Itinerary, got.Itinerary)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM itineraries").
			WithArgs("it-2", "owner-1").
			WillReturnError(pgx.ErrNoRows)

		_, err := s.Get(context.Background(), "owner-1", "it-2")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryStore_List(t *testing.T) {
	s, mock := newMockStore(t)
	newer := time.Now().UTC()
	older := newer.Add(-time.Hour)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("owner-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery("SELECT (.+) FROM itineraries").
		WithArgs("owner-1", 2, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "agent_name", "destination", "days", "budget", "travelers", "total_budget", "created_at",
		}).
			AddRow("it-2", "成都美食", "成都", 3, "", 2, 12000.0, newer).
			AddRow("it-1", "周末上海", "上海", 2, "3000元", 2, 3000.0, older))

	page, err := s.List(context.Background(), "owner-1", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "it-2", page.Items[0].ID)
	assert.Equal(t, 12000.0, page.Items[0].TotalBudget)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryStore_ListCountFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("owner-1").
		WillReturnError(errors.New("connection reset"))

	_, err := s.List(context.Background(), "owner-1", 20, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NotErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryStore_Delete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM itineraries").
		WithArgs("it-1", "owner-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM itineraries").
		WithArgs("it-1", "owner-2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, s.Delete(context.Background(), "owner-1", "it-1"))
	assert.ErrorIs(t, s.Delete(context.Background(), "owner-2", "it-1"), store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
