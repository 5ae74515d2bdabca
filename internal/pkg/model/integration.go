package model

import "github.com/google/uuid"

// IntegrationSystemChat is the only external system presently bound to
// users. Additional platforms add rows to this table, never new tables.
const IntegrationSystemChat = "chat"

// Integration binds an external identity, scoped to a named external
// system, to an internal user. At most one integration exists per
// (system, external_id).
type Integration struct {
	UserID     uuid.UUID `json:"user_id" gorm:"type:blob;index;not null"`
	System     string    `json:"system" gorm:"uniqueIndex:idx_integration_identity;not null"`
	ExternalID int64     `json:"external_id" gorm:"uniqueIndex:idx_integration_identity;not null"`
}
