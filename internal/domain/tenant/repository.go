package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for tenant persistence
type Repository interface {
	// FindByID finds a tenant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindAll returns all tenants ordered by name
	FindAll(ctx context.Context) ([]Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, t *Tenant) error

	// Count returns the number of tenants
	Count(ctx context.Context) (int64, error)
}
