package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/store"
	"github.com/NomadCrew/nomad-crew-itinerary/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the store needs. pgxmock pools satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ensure ItineraryStore implements store.ItineraryStore.
var _ store.ItineraryStore = (*ItineraryStore)(nil)

type ItineraryStore struct {
	db DBTX
}

func NewItineraryStore(db DBTX) *ItineraryStore {
	return &ItineraryStore{db: db}
}

func (s *ItineraryStore) Save(ctx context.Context, rec *types.ItineraryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	prefs, err := json.Marshal(rec.Request.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	doc, err := json.Marshal(rec.Itinerary)
	if err != nil {
		return fmt.Errorf("failed to encode itinerary: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		INSERT INTO itineraries (
			id, owner_id, agent_name, destination, days, budget, travelers,
			preferences, extra_requirements, itinerary, total_budget
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		rec.ID,
		rec.OwnerID,
		rec.Request.AgentName,
		rec.Request.Destination,
		rec.Request.Days,
		rec.Request.Budget,
		rec.Request.Travelers,
		prefs,
		rec.Request.ExtraRequirements,
		doc,
		rec.Itinerary.Overview.TotalBudget,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to insert itinerary: %w", err)
	}

	logger.GetLogger().Debugw("Itinerary saved", "itineraryId", rec.ID, logger.OwnerIDKey, rec.OwnerID)
	return nil
}

func (s *ItineraryStore) Get(ctx context.Context, ownerID, id string) (*types.ItineraryRecord, error) {
	var (
		rec   types.ItineraryRecord
		prefs []byte
		doc   []byte
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, owner_id, agent_name, destination, days, budget, travelers,
		       preferences, extra_requirements, itinerary, created_at, updated_at
		FROM itineraries
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.Request.AgentName,
		&rec.Request.Destination,
		&rec.Request.Days,
		&rec.Request.Budget,
		&rec.Request.Travelers,
		&prefs,
		&rec.Request.ExtraRequirements,
		&doc,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}

	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &rec.Request.Preferences); err != nil {
			return nil, fmt.Errorf("failed to decode preferences: %w", err)
		}
	}
	if err := json.Unmarshal(doc, &rec.Itinerary); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary: %w", err)
	}
	return &rec, nil
}

func (s *ItineraryStore) List(ctx context.Context, ownerID string, limit, offset int) (*types.HistoryPage, error) {
	page := &types.HistoryPage{Items: []types.ItinerarySummary{}}

	if err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM itineraries WHERE owner_id = $1`, ownerID,
	).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("failed to count itineraries: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, agent_name, destination, days, budget, travelers, total_budget, created_at
		FROM itineraries
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item types.ItinerarySummary
		if err := rows.Scan(
			&item.ID,
			&item.AgentName,
			&item.Destination,
			&item.Days,
			&item.Budget,
			&item.Travelers,
			&item.TotalBudget,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary summary: %w", err)
		}
		page.Items = append(page.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate itineraries: %w", err)
	}
	return page, nil
}

func (s *ItineraryStore) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM itineraries WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
