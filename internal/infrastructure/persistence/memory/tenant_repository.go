package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/tenant"
)

// TenantRepository is an in-memory tenant store for tests and local
// development.
type TenantRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]tenant.Tenant
}

// NewTenantRepository constructs an empty repository
func NewTenantRepository() *TenantRepository {
	return &TenantRepository{data: make(map[uuid.UUID]tenant.Tenant)}
}

// FindByID finds a tenant by ID
func (r *TenantRepository) FindByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// FindAll returns all tenants ordered by name
func (r *TenantRepository) FindAll(_ context.Context) ([]tenant.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]tenant.Tenant, 0, len(r.data))
	for _, t := range r.data {
		results = append(results, t)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// Save creates or updates a tenant
func (r *TenantRepository) Save(_ context.Context, t *tenant.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[t.ID] = *t
	return nil
}

// Count returns the number of tenants
func (r *TenantRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.data)), nil
}

var _ tenant.Repository = (*TenantRepository)(nil)
