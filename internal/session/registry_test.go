package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/learnwords/internal/trainer"
	"github.com/example/learnwords/pkg/models"
)

type factoryCalls struct {
	chats []int64
	times []time.Time
}

func newFactory(calls *factoryCalls) Factory {
	return func(ctx context.Context, chatID int64, username string, firstSeen time.Time) (*trainer.Trainer, error) {
		calls.chats = append(calls.chats, chatID)
		calls.times = append(calls.times, firstSeen)
		return trainer.New(nil), nil
	}
}

func newTestRegistry(t *testing.T, capacity int, ttl time.Duration, calls *factoryCalls) (*Registry, *time.Time) {
	t.Helper()

	r, err := NewRegistry(capacity, ttl, newFactory(calls))
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	return r, &clock
}

func TestGetCreatesOnce(t *testing.T) {
	calls := &factoryCalls{}
	r, _ := newTestRegistry(t, 10, time.Hour, calls)
	ctx := context.Background()
	firstSeen := time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)

	first, err := r.Get(ctx, 1, "alice", firstSeen)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	first.LastQuestion = &models.Question{}

	second, err := r.Get(ctx, 1, "alice", firstSeen.Add(time.Minute))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if first != second {
		t.Errorf("expected the same session for the same chat")
	}
	if second.LastQuestion == nil {
		t.Errorf("last question was lost")
	}
	if len(calls.chats) != 1 {
		t.Errorf("expected one trainer to be created, got %d", len(calls.chats))
	}
	if !calls.times[0].Equal(firstSeen) {
		t.Errorf("factory got %v instead of the first event time", calls.times[0])
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	calls := &factoryCalls{}
	r, _ := newTestRegistry(t, 10, time.Hour, calls)
	ctx := context.Background()

	a, _ := r.Get(ctx, 1, "", time.Now())
	b, _ := r.Get(ctx, 2, "", time.Now())

	if a == b || a.Trainer == b.Trainer {
		t.Errorf("different chats must not share a session")
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", r.Len())
	}
}

func TestCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	calls := &factoryCalls{}
	r, _ := newTestRegistry(t, 2, 0, calls)
	ctx := context.Background()

	r.Get(ctx, 1, "", time.Now())
	r.Get(ctx, 2, "", time.Now())
	r.Get(ctx, 1, "", time.Now())
	r.Get(ctx, 3, "", time.Now())

	if r.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", r.Len())
	}

	// chat 2 was the least recently used and must be rebuilt
	r.Get(ctx, 2, "", time.Now())
	if len(calls.chats) != 4 || calls.chats[3] != 2 {
		t.Errorf("unexpected factory calls %v", calls.chats)
	}
}

func TestEvictIdle(t *testing.T) {
	calls := &factoryCalls{}
	r, clock := newTestRegistry(t, 10, time.Hour, calls)
	ctx := context.Background()

	r.Get(ctx, 1, "", time.Now())
	*clock = clock.Add(45 * time.Minute)
	r.Get(ctx, 2, "", time.Now())
	*clock = clock.Add(30 * time.Minute)

	if evicted := r.EvictIdle(); evicted != 1 {
		t.Errorf("expected 1 evicted session, got %d", evicted)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 session left, got %d", r.Len())
	}
}

func TestEvictIdleDisabled(t *testing.T) {
	calls := &factoryCalls{}
	r, clock := newTestRegistry(t, 10, 0, calls)

	r.Get(context.Background(), 1, "", time.Now())
	*clock = clock.Add(1000 * time.Hour)

	if evicted := r.EvictIdle(); evicted != 0 {
		t.Errorf("expected no eviction with zero ttl, got %d", evicted)
	}
}

func TestGetFactoryError(t *testing.T) {
	r, err := NewRegistry(10, time.Hour, func(ctx context.Context, chatID int64, username string, firstSeen time.Time) (*trainer.Trainer, error) {
		return nil, errors.New("database is down")
	})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	if _, err := r.Get(context.Background(), 1, "", time.Now()); err == nil {
		t.Error("expected the factory error")
	}
	if r.Len() != 0 {
		t.Errorf("failed session must not be stored")
	}
}

func TestNewRegistryRejectsZeroCapacity(t *testing.T) {
	if _, err := NewRegistry(0, time.Hour, newFactory(&factoryCalls{})); err == nil {
		t.Error("expected an error for zero capacity")
	}
}
