package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/nexuspointwg/corectl/internal/pkg/model"
)

// ConfigStore manages the configs and ips tables (C4).
type ConfigStore interface {
	// AddConfig is a single transaction inserting into configs and ips. A
	// unique violation on the config's public-key column is mapped to
	// code.ErrServiceClientAlreadyExists.
	AddConfig(ctx context.Context, cfg *model.Config, addr uint32) error

	// GetFull returns one config (any owner) joined with its IP and stats,
	// or code.ErrServiceNotFound.
	GetFull(ctx context.Context, id uuid.UUID) (*model.FullConfig, error)

	// GetFullByAddr returns the non-deleted config assigned addr, joined
	// with its IP and stats, or code.ErrServiceNotFound. Used by
	// pair-token association to resolve which config a claimed IP names.
	GetFullByAddr(ctx context.Context, addr uint32) (*model.FullConfig, error)

	// ListFullByUser returns every non-deleted config owned by userID,
	// joined with its IP and stats.
	ListFullByUser(ctx context.Context, userID uuid.UUID) ([]*model.FullConfig, error)

	// ListAllNonDeleted returns every non-deleted config across all users,
	// joined with its IP — used by init() to rebuild the kernel peer set.
	ListAllNonDeleted(ctx context.Context) ([]*model.FullConfig, error)

	// Rename updates a config's display name.
	Rename(ctx context.Context, id uuid.UUID, name string) error

	// SoftDelete marks a config deleted=1. It does not remove the row or
	// its IP assignment.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// CountAll returns the total number of config rows ever inserted
	// (deleted and non-deleted), used to advance the IP allocator cursor
	// on startup in the same order addresses were originally handed out.
	CountAll(ctx context.Context) (int64, error)
}

// StatDelta is one (public_key, dtx, drx) observation emitted by the
// stats worker for a single accumulation transaction.
type StatDelta struct {
	PublicKey []byte
	DTx       uint64
	DRx       uint64
}

// StatStore manages the stats_v2 table.
type StatStore interface {
	// UpdatePeersStats upserts every delta inside one transaction:
	// tx = tx + excluded.tx, rx = rx + excluded.rx.
	UpdatePeersStats(ctx context.Context, deltas []StatDelta) error

	// Get returns the accumulated totals for a key, or (0, 0) if none yet.
	Get(ctx context.Context, publicKey []byte) (tx uint64, rx uint64, err error)
}

// PeerSettingStore manages the per-config double-VPN toggle, persisted
// so the setting survives restarts and is replayed by reconciliation.
type PeerSettingStore interface {
	// Set persists the double-VPN flag for a config.
	Set(ctx context.Context, configID uuid.UUID, enabled bool) error

	// Get returns the persisted flag, defaulting to false if no row exists.
	Get(ctx context.Context, configID uuid.UUID) (bool, error)

	// ListEnabled returns the config ids with double-VPN currently on,
	// used by init() to replay the rule set.
	ListEnabled(ctx context.Context) ([]uuid.UUID, error)
}

// RequestStore manages the requests table. Only CRUD is implemented;
// status transitions are an unspecified Open Question (see DESIGN.md).
type RequestStore interface {
	Create(ctx context.Context, req *model.Request) error
	Get(ctx context.Context, id uuid.UUID) (*model.Request, error)
	ListPending(ctx context.Context) ([]*model.Request, error)
}
