// Package ratelimit guards the control API against runaway clients, most
// importantly the pairing endpoint, which forwards every attempt to the
// remote content service.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Key identifies one rate limit counter.
type Key struct {
	// Type names the guarded operation, e.g. "pair" or "api_request"
	Type string
	// RemoteIP is the client address the counter is scoped to
	RemoteIP string
}

// Limit defines a counter's budget.
type Limit struct {
	// Rate is the number of operations allowed per Period
	Rate int
	// Period is the counting window
	Period time.Duration
}

// Status describes a counter's state after an Allow call.
type Status struct {
	Limit     Limit
	Remaining int
	// Reset is when the current window ends
	Reset time.Time
}

// Store tracks counters.
type Store interface {
	// Increment counts one operation and returns the counter's status.
	// The operation is allowed when Remaining is non-negative.
	Increment(ctx context.Context, key Key, limit Limit) (Status, error)

	// Reset clears a counter.
	Reset(ctx context.Context, key Key) error
}

// ErrLimitExceeded is returned by Allow when a counter is over budget.
type ErrLimitExceeded struct {
	Status Status
}

func (e *ErrLimitExceeded) Error() string {
	return "rate limit exceeded"
}

// Service enforces the registered limits.
type Service struct {
	store  Store
	logger *slog.Logger

	mu     sync.RWMutex
	limits map[string]Limit
}

// NewService creates a rate limiting service with no limits registered.
// Operations without a registered limit are always allowed.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		limits: make(map[string]Limit),
	}
}

// RegisterLimit sets the budget for an operation type.
func (s *Service) RegisterLimit(limitType string, limit Limit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits[limitType] = limit
}

// GetLimit returns the registered limit, zero-valued when none is set.
func (s *Service) GetLimit(limitType string) Limit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limits[limitType]
}

// Allow counts one operation and returns ErrLimitExceeded when the
// budget is spent. The status is returned in both cases so callers can
// emit rate limit headers.
func (s *Service) Allow(ctx context.Context, key Key) (Status, error) {
	limit := s.GetLimit(key.Type)
	if limit.Rate == 0 {
		return Status{Remaining: 1}, nil
	}

	status, err := s.store.Increment(ctx, key, limit)
	if err != nil {
		s.logger.Error("rate limit check failed",
			"error", err,
			"type", key.Type,
			"remoteIP", key.RemoteIP,
		)
		return status, err
	}

	if status.Remaining < 0 {
		return status, &ErrLimitExceeded{Status: status}
	}
	return status, nil
}

// Reset clears the counter for a key.
func (s *Service) Reset(ctx context.Context, key Key) error {
	return s.store.Reset(ctx, key)
}
