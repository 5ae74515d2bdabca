package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an opaque 128-bit identity. A User is created implicitly the
// first time an external identity (e.g. a chat id) contacts the service.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:blob"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Role is an opaque 128-bit identifier. The only well-known role is ADMIN,
// whose id is a fixed literal so it can be referenced without a lookup.
type Role struct {
	ID uuid.UUID `json:"id" gorm:"primaryKey;type:blob"`
}

// AdminRoleID is the fixed, well-known ADMIN role identifier.
var AdminRoleID = uuid.MustParse("22129c89-7069-49ce-9f4a-f85004a7f230")

// UserRole is the membership row binding a user to a role.
type UserRole struct {
	UserID uuid.UUID `json:"user_id" gorm:"primaryKey;type:blob"`
	RoleID uuid.UUID `json:"role_id" gorm:"primaryKey;type:blob"`
}
