package property

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for property persistence
type Repository interface {
	// FindByID finds a property by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// FindByCode finds a property by its human-facing code
	FindByCode(ctx context.Context, code string) (*Property, error)

	// FindAll returns all properties, most recently created first
	FindAll(ctx context.Context) ([]Property, error)

	// Save creates or updates a property
	Save(ctx context.Context, p *Property) error

	// Count returns the number of properties
	Count(ctx context.Context) (int64, error)
}
