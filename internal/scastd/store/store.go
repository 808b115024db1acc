// Package store provides the player's persistent storage abstraction.
package store

import (
	"context"
	"time"
)

// Store is the interface for the player's local persistence: a small
// key-value table for device state and a best-effort snapshot of the
// last good playlist.
type Store interface {
	// Key-value device state
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
	DeleteConfig(ctx context.Context, key string) error

	// Playlist snapshot cache
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	GetSnapshot(ctx context.Context) (*Snapshot, error)

	// Lifecycle
	Close() error
}

// Snapshot holds the serialized form of the last successfully fetched
// playlist. It is best-effort only; the player never trusts it over a
// fresh fetch.
type Snapshot struct {
	// Token is the server change token of the saved playlist
	Token string
	// Data is the playlist encoded as JSON
	Data []byte
	// SavedAt is when the snapshot was written
	SavedAt time.Time
}

// ErrNotFound is returned when a record is not found.
type ErrNotFound struct {
	Resource string
	Key      string
}

func (e ErrNotFound) Error() string {
	if e.Key == "" {
		return e.Resource + " not found"
	}
	return e.Resource + " not found: " + e.Key
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	_, ok := err.(ErrNotFound)
	return ok
}
