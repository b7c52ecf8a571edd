package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/sensor-stats/internal/logging"
)

// CacheStats is what the reporter needs from the result cache.
type CacheStats interface {
	Len() int
	Hits() int64
	Misses() int64
}

// TableStats reports the size of the loaded dataset.
type TableStats interface {
	Readings(ctx context.Context) int
}

// Scheduler periodically logs cache and dataset statistics.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cache     CacheStats
	table     TableStats
	interval  time.Duration
	logger    *logging.Logger
}

// New creates a new Scheduler. An interval <= 0 disables reporting.
func New(interval time.Duration, cache CacheStats, table TableStats, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		cache:     cache,
		table:     table,
		interval:  interval,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Debug("stats reporting disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.Report)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Report logs one snapshot of the statistics.
func (s *Scheduler) Report() {
	s.logger.Info("cache statistics",
		"entries", s.cache.Len(),
		"hits", s.cache.Hits(),
		"misses", s.cache.Misses(),
		"readings", s.table.Readings(context.Background()),
	)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
