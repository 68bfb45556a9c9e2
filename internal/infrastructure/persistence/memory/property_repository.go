package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/property"
)

// PropertyRepository is an in-memory property store for tests and local
// development.
type PropertyRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]property.Property
}

// NewPropertyRepository constructs an empty repository
func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{data: make(map[uuid.UUID]property.Property)}
}

// FindByID finds a property by ID
func (r *PropertyRepository) FindByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// FindByCode finds a property by its human-facing code
func (r *PropertyRepository) FindByCode(_ context.Context, code string) (*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.data {
		if p.Code == code {
			match := p
			return &match, nil
		}
	}
	return nil, nil
}

// FindAll returns all properties, most recently created first
func (r *PropertyRepository) FindAll(_ context.Context) ([]property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]property.Property, 0, len(r.data))
	for _, p := range r.data {
		results = append(results, p)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

// Save creates or updates a property
func (r *PropertyRepository) Save(_ context.Context, p *property.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[p.ID] = *p
	return nil
}

// Count returns the number of properties
func (r *PropertyRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.data)), nil
}

var _ property.Repository = (*PropertyRepository)(nil)
