// Package scheduler wires up the cron job that periodically re-runs every
// saved search and flags the ones that gained results.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/joannaWebDev/jobtracker-pro/internal/search"
	"github.com/joannaWebDev/jobtracker-pro/internal/tracker"
)

// Scheduler wraps robfig/cron and manages the refresh loop.
type Scheduler struct {
	cron   *cron.Cron
	store  *tracker.SavedSearchStore
	engine *search.Engine
	rdb    *redis.Client
	spec   string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(store *tracker.SavedSearchStore, engine *search.Engine, rdb *redis.Client, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		store:  store,
		engine: engine,
		rdb:    rdb,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one refresh
// immediately so saved-search totals are populated without waiting for the
// first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	slog.Info("refresh scheduler started", "spec", s.spec)

	go s.runRefresh(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	slog.Info("refresh scheduler stopped")
}

// runRefresh re-runs every saved search sequentially. The shared limiter
// inside the engine paces the upstream calls, so a long saved-search list
// simply takes longer rather than bursting. Per-search failures are logged
// and skipped.
func (s *Scheduler) runRefresh(ctx context.Context) {
	searches, err := s.store.ListAll(ctx)
	if err != nil {
		slog.Error("load saved searches failed", "err", err)
		return
	}
	if len(searches) == 0 {
		slog.Info("no saved searches, nothing to refresh")
		return
	}

	slog.Info("refresh cycle started", "searches", len(searches))
	for _, ss := range searches {
		result, err := s.engine.Search(ctx, ss.Request(search.DefaultPerPage))
		if err != nil {
			slog.Error("saved search refresh failed", "id", ss.ID, "err", err)
			continue
		}
		if result.APIError != "" {
			slog.Warn("saved search refresh degraded", "id", ss.ID, "apiError", result.APIError)
			continue
		}

		if result.TotalJobs > ss.LastTotal {
			event, _ := json.Marshal(map[string]any{
				"type":          "EVENT_NEW_JOBS",
				"savedSearchId": ss.ID,
				"userId":        ss.UserID,
				"previousTotal": ss.LastTotal,
				"newTotal":      result.TotalJobs,
			})
			if err := s.rdb.Publish(ctx, "EVENT_NEW_JOBS", event).Err(); err != nil {
				slog.Warn("publish EVENT_NEW_JOBS failed", "err", err)
			}
		}

		if err := s.store.UpdateTotal(ctx, ss.ID, result.TotalJobs); err != nil {
			slog.Error("update saved search total failed", "id", ss.ID, "err", err)
		}
	}
	slog.Info("refresh cycle complete")
}
