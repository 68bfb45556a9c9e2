package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
	"github.com/nasmila140/property-lease-management-system/internal/domain/tenant"
)

// Service handles tenant-related business operations
type Service struct {
	tenants tenant.Repository
}

// NewService creates a new tenant Service
func NewService(tenants tenant.Repository) *Service {
	return &Service{tenants: tenants}
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTenantRequest represents a request to register a tenant
type CreateTenantRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// Create registers a new tenant
func (s *Service) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	t, err := tenant.NewTenant(req.Name, req.Contact, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.tenants.Save(ctx, t); err != nil {
		return nil, err
	}

	response := toTenantResponse(t)
	return &response, nil
}

// GetByID retrieves a tenant by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	t, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
	}

	response := toTenantResponse(t)
	return &response, nil
}

// List returns all tenants ordered by name
func (s *Service) List(ctx context.Context) ([]TenantResponse, error) {
	tenants, err := s.tenants.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		responses = append(responses, toTenantResponse(&tenants[i]))
	}
	return responses, nil
}

func toTenantResponse(t *tenant.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Contact:   t.Contact,
		Email:     t.Email,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
