package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/learnwords/internal/trainer"
	"github.com/example/learnwords/pkg/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Session pairs a chat user with its trainer and the last question sent to it
type Session struct {
	ChatID       int64
	Trainer      *trainer.Trainer
	LastQuestion *models.Question
	LastSeen     time.Time
}

// Factory builds the trainer for a user seen for the first time
type Factory func(ctx context.Context, chatID int64, username string, firstSeen time.Time) (*trainer.Trainer, error)

// Registry keeps live sessions keyed by chat id. It holds at most capacity
// sessions, dropping the least recently used one, and EvictIdle removes
// sessions not seen for longer than the ttl.
type Registry struct {
	mu       sync.Mutex
	sessions *lru.Cache[int64, *Session]
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry creates an empty registry. A zero ttl disables idle eviction.
func NewRegistry(capacity int, ttl time.Duration, factory Factory) (*Registry, error) {
	sessions, err := lru.NewWithEvict(capacity, func(chatID int64, _ *Session) {
		log.Printf("Session for chat %d evicted", chatID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &Registry{
		sessions: sessions,
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// Get returns the session of the chat, creating it on first contact.
// eventTime is the time of the event that triggered the lookup.
func (r *Registry) Get(ctx context.Context, chatID int64, username string, eventTime time.Time) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions.Get(chatID); ok {
		s.LastSeen = r.now()
		return s, nil
	}

	t, err := r.factory(ctx, chatID, username, eventTime)
	if err != nil {
		return nil, fmt.Errorf("failed to create trainer for chat %d: %w", chatID, err)
	}

	s := &Session{ChatID: chatID, Trainer: t, LastSeen: r.now()}
	r.sessions.Add(chatID, s)
	return s, nil
}

// EvictIdle removes sessions idle for longer than the ttl and returns how many were removed
func (r *Registry) EvictIdle() int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	deadline := r.now().Add(-r.ttl)
	evicted := 0
	for _, chatID := range r.sessions.Keys() {
		s, ok := r.sessions.Peek(chatID)
		if ok && s.LastSeen.Before(deadline) {
			r.sessions.Remove(chatID)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	return r.sessions.Len()
}
