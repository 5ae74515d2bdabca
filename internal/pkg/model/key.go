package model

import "github.com/google/uuid"

// KeyLen is the length in bytes of a WireGuard Curve25519 key.
const KeyLen = 32

// Key is a stored WireGuard key pair. PrivateKey is nil when the end user
// supplied only a public key — the server never learns the private half
// in that case. A user may own several keys.
type Key struct {
	PublicKey  []byte    `json:"public_key" gorm:"primaryKey;type:blob"`
	PrivateKey []byte    `json:"private_key,omitempty" gorm:"type:blob"`
	Name       string    `json:"name" gorm:"not null"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:blob;index;not null"`
}
