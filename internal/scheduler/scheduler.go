package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/learnwords/internal/metrics"
)

// Sessions is the part of the session registry the scheduler maintains
type Sessions interface {
	EvictIdle() int
	Len() int
}

// Scheduler manages periodic maintenance of chat sessions
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  Sessions
	interval  time.Duration
}

// New creates a new scheduler instance
func New(sessions Sessions, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		sessions:  sessions,
		interval:  interval,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid eviction interval %v", s.interval)
	}
	if _, err := s.scheduler.Every(s.interval).Do(s.evictIdleSessions); err != nil {
		return err
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// evictIdleSessions drops sessions that outlived their TTL and refreshes the gauge
func (s *Scheduler) evictIdleSessions() {
	if n := s.sessions.EvictIdle(); n > 0 {
		log.Printf("Evicted %d idle sessions", n)
	}
	metrics.SetActiveSessions(s.sessions.Len())
}
