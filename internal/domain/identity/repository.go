package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for admin user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username (stored lowercase)
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Save creates a new user
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user
	Update(ctx context.Context, u *User) error
}

// LoginActivityRepository defines the interface for login audit persistence
type LoginActivityRepository interface {
	// Save appends a login activity record
	Save(ctx context.Context, a *LoginActivity) error

	// FindRecent returns the most recent login attempts, newest first
	FindRecent(ctx context.Context, limit int) ([]LoginActivity, error)
}
