package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count int
	start time.Time
}

// MemoryStore is a fixed-window counter store. The daemon serves one
// display on a local socket, so counters never grow past a handful of
// keys and need no external backend.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[Key]*window
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[Key]*window),
		now:     time.Now,
	}
}

// Increment implements Store.
func (s *MemoryStore) Increment(_ context.Context, key Key, limit Limit) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= limit.Period {
		w = &window{start: now}
		s.windows[key] = w
	}
	w.count++

	return Status{
		Limit:     limit,
		Remaining: limit.Rate - w.count,
		Reset:     w.start.Add(limit.Period),
	}, nil
}

// Reset implements Store.
func (s *MemoryStore) Reset(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}
