package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/joannaWebDev/jobtracker-pro/internal/model"
)

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNotFound is returned when an application is missing or does not belong
// to the caller.
var ErrNotFound = errors.New("application not found")

// ErrConflict is returned when the caller already tracks this job.
var ErrConflict = errors.New("already applied to this job")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// ─── Service ─────────────────────────────────────────────────────────────────

// Service encapsulates application-tracking business logic. It is
// transport-agnostic; the HTTP layer lives in httpapi.
type Service struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, rdb *redis.Client) *Service {
	return &Service{pool: pool, rdb: rdb}
}

// CreateInput carries the job snapshot stored with a new application.
type CreateInput struct {
	ExternalJobID string `json:"externalJobId"`
	JobTitle      string `json:"jobTitle"`
	Company       string `json:"company"`
	Location      string `json:"location"`
	Source        string `json:"source"`
	ExternalURL   string `json:"externalUrl"`
}

func (in *CreateInput) validate() error {
	if in.ExternalJobID == "" || in.JobTitle == "" || in.Company == "" ||
		in.Location == "" || in.Source == "" || in.ExternalURL == "" {
		return &ValidationError{Msg: "missing required fields"}
	}
	return nil
}

// Create inserts a new application at APPLIED status. Returns ErrConflict
// when (externalJobId, userId) already exists — no partial mutation occurs.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*model.Application, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	app := model.Application{
		ID:            uuid.NewString(),
		UserID:        userID,
		ExternalJobID: in.ExternalJobID,
		JobTitle:      in.JobTitle,
		Company:       in.Company,
		Location:      in.Location,
		Source:        in.Source,
		ExternalURL:   in.ExternalURL,
		Status:        string(StatusApplied),
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO applications
		   (id, user_id, external_job_id, job_title, company, location, source, external_url, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (external_job_id, user_id) DO NOTHING
		 RETURNING applied_at`,
		app.ID, app.UserID, app.ExternalJobID, app.JobTitle, app.Company,
		app.Location, app.Source, app.ExternalURL, app.Status,
	).Scan(&app.AppliedAt)
	if err != nil {
		// No row back means the conflict clause swallowed the insert.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	return &app, nil
}

// List returns all applications for the user, most recently applied first.
func (s *Service) List(ctx context.Context, userID string) ([]model.Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, external_job_id, job_title, company, location,
		        source, external_url, status, applied_at
		 FROM applications
		 WHERE user_id = $1
		 ORDER BY applied_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list applications query: %w", err)
	}
	defer rows.Close()

	apps := make([]model.Application, 0)
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.ExternalJobID, &a.JobTitle, &a.Company,
			&a.Location, &a.Source, &a.ExternalURL, &a.Status, &a.AppliedAt,
		); err != nil {
			return nil, fmt.Errorf("list applications scan: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// UpdateStatus overwrites an application's status in place. Returns a
// ValidationError for a status outside the enum, ErrNotFound when the
// application is missing or owned by someone else.
func (s *Service) UpdateStatus(ctx context.Context, userID, appID, newStatus string) (*model.Application, error) {
	status, err := ParseStatus(newStatus)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	var a model.Application
	err = s.pool.QueryRow(ctx,
		`UPDATE applications
		 SET status = $1
		 WHERE id = $2 AND user_id = $3
		 RETURNING id, user_id, external_job_id, job_title, company, location,
		           source, external_url, status, applied_at`,
		string(status), appID, userID,
	).Scan(
		&a.ID, &a.UserID, &a.ExternalJobID, &a.JobTitle, &a.Company,
		&a.Location, &a.Source, &a.ExternalURL, &a.Status, &a.AppliedAt,
	)
	if err != nil {
		return nil, ErrNotFound
	}

	// Publish for live dashboard updates (non-fatal).
	if s.rdb != nil {
		event, _ := json.Marshal(map[string]string{
			"type":          "EVENT_APPLICATION_UPDATED",
			"applicationId": a.ID,
			"userId":        userID,
			"status":        a.Status,
		})
		if err := s.rdb.Publish(ctx, "EVENT_APPLICATION_UPDATED", event).Err(); err != nil {
			slog.Warn("publish EVENT_APPLICATION_UPDATED failed", "err", err)
		}
	}

	return &a, nil
}
