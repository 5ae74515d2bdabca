package model

// Stat holds the durable, monotonically non-decreasing byte counters for
// one WireGuard public key, accumulated across kernel counter resets by
// the stats worker (C8).
type Stat struct {
	PublicKey []byte `json:"public_key" gorm:"primaryKey;type:blob"`
	Tx        uint64 `json:"tx" gorm:"not null;default:0"`
	Rx        uint64 `json:"rx" gorm:"not null;default:0"`
}

// TableName matches the spec's literal table name for traffic counters.
func (Stat) TableName() string { return "stats_v2" }
