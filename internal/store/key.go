package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexuspointwg/corectl/internal/pkg/model"
)

// KeyStore manages the keys table.
type KeyStore interface {
	// Get loads a key by its public key, or code.ErrServiceNotFound.
	Get(ctx context.Context, publicKey []byte) (*model.Key, error)

	// EnsureKey inserts the key row if one does not already exist for this
	// public key; it is a no-op (not an error) if the row is already
	// present, since a config's new_config flow only needs to make sure
	// the key exists, not to own its creation.
	EnsureKey(ctx context.Context, key *model.Key) error

	// ListByUser returns every key row owned by userID.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Key, error)
}
