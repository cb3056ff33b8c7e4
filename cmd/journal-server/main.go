package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petedur/BPD-Tracker/internal/api"
	"github.com/petedur/BPD-Tracker/internal/config"
	"github.com/petedur/BPD-Tracker/internal/db"
	"github.com/petedur/BPD-Tracker/internal/followup"
	"github.com/petedur/BPD-Tracker/internal/journal"
	"github.com/petedur/BPD-Tracker/internal/report"
	"github.com/petedur/BPD-Tracker/internal/scheduler"
	"github.com/petedur/BPD-Tracker/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting journal-server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Open archive database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("WARNING: unknown timezone %q, using UTC", cfg.Timezone)
		loc = time.UTC
	}

	// Journal service over the JSON document store
	st := store.New(cfg.DataDir)
	j := journal.New(st, followup.NewSelector(), loc, cfg.ScoreHigh, cfg.ScoreLow)
	composer := report.NewComposer(cfg.MinEpisodeDays)

	// Create router
	router := api.NewRouter(cfg, j, composer)

	// Create and start the export scheduler
	sched, err := scheduler.New(database, st, j, composer, scheduler.Config{
		Timezone:   cfg.Timezone,
		ExportHour: cfg.ExportHour,
		ExportDir:  cfg.ExportDir,
	})
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Start server
	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Stopping scheduler...")
	if err := sched.Stop(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}

	log.Println("Closing database...")
	if err := database.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("Shutdown complete")
}
