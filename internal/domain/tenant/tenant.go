package tenant

import (
	"strings"

	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
)

// Tenant is a renter the property manager bills each month. Bills reference
// tenants by ID; the ledger never mutates tenant data.
type Tenant struct {
	shared.BaseEntity
	Name    string
	Contact string
	Email   string
}

// NewTenant creates a new tenant
func NewTenant(name, contact, email string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant name cannot exceed 200 characters")
	}

	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Contact:    strings.TrimSpace(contact),
		Email:      strings.TrimSpace(email),
	}, nil
}
