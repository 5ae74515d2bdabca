package model

import (
	"time"

	"github.com/google/uuid"
)

// Request status domain. Transitions between statuses are an explicitly
// unimplemented Open Question; only CRUD is provided here.
const (
	RequestStatusPending  = 0
	RequestStatusApproved = 1
	RequestStatusDeclined = 2
)

// Request is a config-request workflow row, surfaced primarily through
// the chat-bot and HTTP frontends.
type Request struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:blob"`
	ExternalID *int64    `json:"external_id,omitempty" gorm:"index"`
	Status     int       `json:"status" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
