package scheduler

import (
	"sync"
	"testing"
	"time"
)

type countingSessions struct {
	mu    sync.Mutex
	calls int
	live  int
}

func (c *countingSessions) EvictIdle() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.live > 0 {
		c.live--
		return 1
	}
	return 0
}

func (c *countingSessions) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

func (c *countingSessions) evictions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestEvictIdleSessions(t *testing.T) {
	sessions := &countingSessions{live: 2}
	s := New(sessions, time.Minute)

	s.evictIdleSessions()
	s.evictIdleSessions()

	if got := sessions.Len(); got != 0 {
		t.Errorf("expected all sessions evicted, %d left", got)
	}
}

func TestStartRunsJob(t *testing.T) {
	sessions := &countingSessions{}
	s := New(sessions, 20*time.Millisecond)
	if err := s.Start(); err != nil {
		t.Fatalf("failed to start scheduler: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for sessions.evictions() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("eviction job never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStartRejectsZeroInterval(t *testing.T) {
	s := New(&countingSessions{}, 0)
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected an error for a zero interval")
	}
}
