package model

import (
	"time"

	"github.com/google/uuid"
)

// Config is a per-device peer entry owned by a user. Exactly one IPv4 is
// assigned to a Config, drawn from the allocator and recorded in the
// joined ConfigIP row. Removal is soft: Deleted is set and the IP is
// never reclaimed.
type Config struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:blob"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:blob;index;not null"`
	PublicKey []byte    `json:"public_key" gorm:"type:blob;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null" validate:"required,min=1,max=64,urlsafe,nochinese"`
	Deleted   bool      `json:"deleted" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConfigIP is the IPv4 assignment joined to a Config. Addr is the address
// stored as a 32-bit big-endian integer, matching the wire representation
// used by the netlink route/rule control components.
type ConfigIP struct {
	ConfigID uuid.UUID `json:"config_id" gorm:"primaryKey;type:blob"`
	Addr     uint32    `json:"addr" gorm:"not null;index"`
}

// TableName matches the spec's literal table name for IP assignments.
func (ConfigIP) TableName() string { return "ips" }

// PeerSetting persists the per-config "double-VPN" toggle so it survives
// restarts and is replayed by the reconciler's init.
type PeerSetting struct {
	ConfigID  uuid.UUID `json:"config_id" gorm:"primaryKey;type:blob"`
	DoubleVPN bool      `json:"double_vpn" gorm:"not null;default:false"`
}

// FullConfig is a Config enriched with its assigned address and
// accumulated traffic counters, as returned by the service's config/configs
// operations.
type FullConfig struct {
	Config
	Addr uint32
	Tx   uint64
	Rx   uint64
}
