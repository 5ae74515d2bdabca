package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexuspointwg/corectl/internal/pkg/model"
)

// UserStore manages the users table.
type UserStore interface {
	// Get loads a user by id.
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// IntegrationStore manages the integrations table and implements the
// "create user implicitly on first contact" lifecycle rule.
type IntegrationStore interface {
	// Resolve finds the user bound to (system, externalID), or
	// code.ErrServiceNotFound if none exists yet.
	Resolve(ctx context.Context, system string, externalID int64) (*model.User, error)

	// EnsureUser implements add_user: a single transaction that inserts the
	// user row (ON CONFLICT DO NOTHING) and the integration row if a binding
	// for (system, externalID) does not already exist, returning the
	// resolved user either way.
	EnsureUser(ctx context.Context, system string, externalID int64) (*model.User, error)

	// Bind writes an integration row associating externalID with an
	// already-existing userID, used by pair-token association to let a
	// chat identity claim an existing config's owner. A pre-existing
	// binding for (system, externalID) is an error, not a no-op.
	Bind(ctx context.Context, userID uuid.UUID, system string, externalID int64) error
}

// RoleStore manages role membership.
type RoleStore interface {
	// IsAdmin reports whether userID carries the ADMIN role.
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)

	// AddAdmin grants the ADMIN role to userID (idempotent).
	AddAdmin(ctx context.Context, userID uuid.UUID) error

	// RemoveAdmin revokes the ADMIN role from userID (idempotent).
	RemoveAdmin(ctx context.Context, userID uuid.UUID) error
}
