package tracker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joannaWebDev/jobtracker-pro/internal/model"
)

// SavedSearchStore persists saved searches, the inputs to the background
// refresh cycle.
type SavedSearchStore struct {
	pool *pgxpool.Pool
}

// NewSavedSearchStore returns a store backed by pool.
func NewSavedSearchStore(pool *pgxpool.Pool) *SavedSearchStore {
	return &SavedSearchStore{pool: pool}
}

// Create stores a new saved search for the user.
func (s *SavedSearchStore) Create(ctx context.Context, userID string, req model.SearchRequest) (*model.SavedSearch, error) {
	if req.Region == "" && req.Country == "" {
		return nil, &ValidationError{Msg: "a saved search needs a region or country"}
	}

	saved := model.SavedSearch{
		ID:       uuid.NewString(),
		UserID:   userID,
		Query:    req.Query,
		Company:  req.Company,
		Type:     req.Type,
		WorkMode: req.WorkMode,
		Region:   req.Region,
		Country:  req.Country,
		City:     req.City,
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO saved_searches
		   (id, user_id, query, company, type, work_mode, region, country, city, last_total)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0)
		 RETURNING created_at`,
		saved.ID, saved.UserID, saved.Query, saved.Company, saved.Type,
		saved.WorkMode, saved.Region, saved.Country, saved.City,
	).Scan(&saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create saved search: %w", err)
	}
	return &saved, nil
}

// ListByUser returns the user's saved searches, newest first.
func (s *SavedSearchStore) ListByUser(ctx context.Context, userID string) ([]model.SavedSearch, error) {
	return s.list(ctx,
		`SELECT id, user_id, query, company, type, work_mode, region, country, city, last_total, created_at
		 FROM saved_searches
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
}

// ListAll returns every saved search; the refresh cycle iterates these.
func (s *SavedSearchStore) ListAll(ctx context.Context) ([]model.SavedSearch, error) {
	return s.list(ctx,
		`SELECT id, user_id, query, company, type, work_mode, region, country, city, last_total, created_at
		 FROM saved_searches
		 ORDER BY created_at`,
	)
}

// UpdateTotal records the most recent totalJobs seen for a saved search.
func (s *SavedSearchStore) UpdateTotal(ctx context.Context, id string, total int) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE saved_searches SET last_total = $1 WHERE id = $2`,
		total, id,
	)
	return err
}

func (s *SavedSearchStore) list(ctx context.Context, query string, args ...any) ([]model.SavedSearch, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("saved searches query: %w", err)
	}
	defer rows.Close()

	searches := make([]model.SavedSearch, 0)
	for rows.Next() {
		var ss model.SavedSearch
		if err := rows.Scan(
			&ss.ID, &ss.UserID, &ss.Query, &ss.Company, &ss.Type, &ss.WorkMode,
			&ss.Region, &ss.Country, &ss.City, &ss.LastTotal, &ss.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("saved searches scan: %w", err)
		}
		searches = append(searches, ss)
	}
	return searches, rows.Err()
}
