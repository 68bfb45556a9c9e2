package identity

import (
	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
)

// LoginActivity is an audit record of a login attempt, successful or not.
// Records are append-only; nothing in the system updates or deletes them.
type LoginActivity struct {
	shared.BaseEntity
	UserID    uuid.UUID
	Username  string
	Success   bool
	IPAddress string
	UserAgent string
}

// NewLoginActivity records a login attempt for a known user
func NewLoginActivity(userID uuid.UUID, username string, success bool, ip, userAgent string) *LoginActivity {
	return &LoginActivity{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Username:   username,
		Success:    success,
		IPAddress:  ip,
		UserAgent:  userAgent,
	}
}
