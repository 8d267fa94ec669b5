// jobtracker-pro API server.
//
// Aggregated job search over the Adzuna API (multi-country fetch,
// client-side filters the upstream cannot express, region auto-correction)
// plus personal application tracking and background saved-search refresh.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/joannaWebDev/jobtracker-pro/internal/adzuna"
	"github.com/joannaWebDev/jobtracker-pro/internal/config"
	"github.com/joannaWebDev/jobtracker-pro/internal/db"
	"github.com/joannaWebDev/jobtracker-pro/internal/httpapi"
	"github.com/joannaWebDev/jobtracker-pro/internal/scheduler"
	"github.com/joannaWebDev/jobtracker-pro/internal/search"
	"github.com/joannaWebDev/jobtracker-pro/internal/tracker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("PostgreSQL: %v", err)
	}
	defer pool.Close()

	// ── Redis ────────────────────────────────────────────────────────────────
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Redis: %v", err)
	}
	defer rdb.Close()

	// ── Core services ────────────────────────────────────────────────────────
	provider := adzuna.NewClient(cfg.AdzunaAppID, cfg.AdzunaAppKey, rdb)
	limiter := search.NewLimiter(search.DefaultInterval)
	engine := search.NewEngine(provider, limiter)

	apps := tracker.NewService(pool, rdb)
	saved := tracker.NewSavedSearchStore(pool)

	// ── Background refresh ───────────────────────────────────────────────────
	sched := scheduler.New(saved, engine, rdb, cfg.RefreshIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	handler := httpapi.NewHandler(engine, apps, saved)
	router := httpapi.NewRouter(handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Stopped.")
}
