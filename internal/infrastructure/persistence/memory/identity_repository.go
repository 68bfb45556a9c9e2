package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/identity"
)

// UserRepository is an in-memory admin user store for tests and local
// development.
type UserRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]identity.User
}

// NewUserRepository constructs an empty repository
func NewUserRepository() *UserRepository {
	return &UserRepository{data: make(map[uuid.UUID]identity.User)}
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// FindByUsername finds a user by username
func (r *UserRepository) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	username = strings.ToLower(strings.TrimSpace(username))
	for _, u := range r.data {
		if u.Username == username {
			match := u
			return &match, nil
		}
	}
	return nil, nil
}

// Save creates a new user
func (r *UserRepository) Save(_ context.Context, u *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[u.ID] = *u
	return nil
}

// Update persists changes to an existing user
func (r *UserRepository) Update(_ context.Context, u *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[u.ID] = *u
	return nil
}

var _ identity.UserRepository = (*UserRepository)(nil)

// LoginActivityRepository is an in-memory login audit store
type LoginActivityRepository struct {
	mu   sync.RWMutex
	data []identity.LoginActivity
}

// NewLoginActivityRepository constructs an empty repository
func NewLoginActivityRepository() *LoginActivityRepository {
	return &LoginActivityRepository{}
}

// Save appends a login activity record
func (r *LoginActivityRepository) Save(_ context.Context, a *identity.LoginActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, *a)
	return nil
}

// FindRecent returns the most recent login attempts, newest first
func (r *LoginActivityRepository) FindRecent(_ context.Context, limit int) ([]identity.LoginActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]identity.LoginActivity, len(r.data))
	copy(results, r.data)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

var _ identity.LoginActivityRepository = (*LoginActivityRepository)(nil)
