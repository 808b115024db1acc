// Package identity manages the persisted device identity token
package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/slidecast/slidecast/internal/errors"
	"github.com/slidecast/slidecast/internal/scastd/store"
)

// configKey is the fixed key the identity token is stored under.
const configKey = "device_identity"

// Manager reads and writes the single device identity. The token is
// opaque to the player: it is issued by the pairing endpoint and only
// replaced or cleared wholesale, never mutated.
type Manager struct {
	store store.Store
}

// NewManager creates an identity manager backed by the given store.
func NewManager(s store.Store) *Manager {
	return &Manager{store: s}
}

// Token returns the persisted device identity. It returns
// errors.ErrIdentityMissing when the device has never been paired.
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, err := m.store.GetConfig(ctx, configKey)
	if err != nil {
		if store.IsNotFound(err) {
			return "", errors.ErrIdentityMissing
		}
		return "", fmt.Errorf("reading device identity: %w", err)
	}
	if token == "" {
		return "", errors.ErrIdentityMissing
	}
	return token, nil
}

// Set persists a newly issued identity token. The remote issues UUIDs,
// so anything that doesn't parse as one is rejected before it can wedge
// the fetch loop.
func (m *Manager) Set(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return fmt.Errorf("%w: device identity must be a UUID", errors.ErrInvalidInput)
	}
	if err := m.store.SetConfig(ctx, configKey, token); err != nil {
		return fmt.Errorf("persisting device identity: %w", err)
	}
	return nil
}

// Clear removes the persisted identity, returning the device to the
// unpaired state.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.DeleteConfig(ctx, configKey); err != nil {
		return fmt.Errorf("clearing device identity: %w", err)
	}
	return nil
}

// Paired reports whether an identity is currently stored.
func (m *Manager) Paired(ctx context.Context) bool {
	_, err := m.Token(ctx)
	return err == nil
}
