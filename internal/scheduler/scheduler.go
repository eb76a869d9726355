package scheduler

import (
	"fmt"
	"log"
	"time"

	"StockDashboard/internal/cache"

	"github.com/robfig/cron/v3"
)

// Scheduler runs background maintenance on a cron schedule.
type Scheduler struct {
	Cron  *cron.Cron
	Store cache.Store
	now   func() time.Time
}

// NewScheduler creates a new Scheduler for the given cache.
func NewScheduler(store cache.Store) *Scheduler {
	return &Scheduler{
		Cron:  cron.New(cron.WithSeconds()),
		Store: store,
		now:   time.Now,
	}
}

// RegisterSweep registers the cache sweep. Policies without expiry have
// nothing to sweep, so no job is added for them.
func (s *Scheduler) RegisterSweep(spec string) error {
	if s.Store.Policy() != cache.PolicyTTL {
		log.Printf("[INFO] cache policy %s needs no sweep", s.Store.Policy())
		return nil
	}
	if _, err := s.Cron.AddFunc(spec, func() { s.SweepNow() }); err != nil {
		return fmt.Errorf("register cache sweep: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// SweepNow drops expired cache entries immediately.
func (s *Scheduler) SweepNow() int {
	removed := s.Store.Sweep(s.now())
	if removed > 0 {
		log.Printf("[INFO] cache sweep removed %d entries, %d remain", removed, s.Store.Len())
	}
	return removed
}
