// Package scheduler runs the nightly report export: every journal document
// present in the data directory gets a plain-text snapshot written to the
// export directory and recorded in the archive database.
package scheduler

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/petedur/BPD-Tracker/internal/db"
	"github.com/petedur/BPD-Tracker/internal/journal"
	"github.com/petedur/BPD-Tracker/internal/report"
	"github.com/petedur/BPD-Tracker/internal/store"
)

// Config holds scheduler configuration.
type Config struct {
	Timezone   string
	ExportHour int
	ExportDir  string
}

// Scheduler manages the export job.
type Scheduler struct {
	scheduler gocron.Scheduler
	db        *db.DB
	store     *store.Store
	journal   *journal.Journal
	composer  *report.Composer
	exportDir string
	timezone  *time.Location
	hour      int
}

// New creates a scheduler. An unknown timezone falls back to UTC.
func New(database *db.DB, st *store.Store, j *journal.Journal, composer *report.Composer, cfg Config) (*Scheduler, error) {
	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		tz = time.UTC
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(tz))
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		scheduler: s,
		db:        database,
		store:     st,
		journal:   j,
		composer:  composer,
		exportDir: cfg.ExportDir,
		timezone:  tz,
		hour:      cfg.ExportHour,
	}, nil
}

// Start registers the export job and starts the scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(s.hour), 0, 0))),
		gocron.NewTask(s.runExport),
		gocron.WithName("report-export"),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	log.Println("Scheduler started")
	return nil
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *Scheduler) runExport() {
	log.Println("Running nightly report export...")

	runID, err := s.db.StartRun("report-export")
	if err != nil {
		log.Printf("Error recording export run: %v", err)
	}

	if err := s.ExportNow(); err != nil {
		log.Printf("Report export failed: %v", err)
		if runID != 0 {
			if ferr := s.db.FinishRun(runID, "failed", err.Error()); ferr != nil {
				log.Printf("Error recording run failure: %v", ferr)
			}
		}
		return
	}

	if runID != 0 {
		if err := s.db.FinishRun(runID, "completed", ""); err != nil {
			log.Printf("Error recording run completion: %v", err)
		}
	}
}

// ExportNow composes and writes a report snapshot for every journal present
// in the data directory, logging each export in the archive.
func (s *Scheduler) ExportNow() error {
	keys, err := s.store.Keys()
	if err != nil {
		return fmt.Errorf("listing journals: %w", err)
	}

	now := time.Now().In(s.timezone)
	forDate := now.Format("2006-01-02")

	for _, key := range keys {
		entries := s.journal.Entries(key)
		text := s.composer.Compose(entries, now)

		name := key
		if name == "" {
			name = "default"
		}
		path := filepath.Join(s.exportDir, fmt.Sprintf("journal_report_%s_%s.txt", name, forDate))

		if err := store.WriteFileAtomic(path, []byte(text)); err != nil {
			return fmt.Errorf("writing export for journal %q: %w", name, err)
		}

		if err := s.db.LogExport(uuid.NewString(), key, forDate, len(entries), path); err != nil {
			return fmt.Errorf("logging export for journal %q: %w", name, err)
		}
		log.Printf("Exported report for journal %q (%d entries) to %s", name, len(entries), path)
	}

	return nil
}
