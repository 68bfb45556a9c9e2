package property

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nasmila140/property-lease-management-system/internal/domain/property"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
)

// Service handles property-related business operations
type Service struct {
	properties property.Repository
}

// NewService creates a new property Service
func NewService(properties property.Repository) *Service {
	return &Service{properties: properties}
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Address       string          `json:"address"`
	Type          string          `json:"type"`
	LeaseStart    *time.Time      `json:"lease_start,omitempty"`
	LeaseEnd      *time.Time      `json:"lease_end,omitempty"`
	MonthlyRent   decimal.Decimal `json:"monthly_rent"`
	TenantName    string          `json:"tenant_name,omitempty"`
	TenantContact string          `json:"tenant_contact,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreatePropertyRequest represents a request to register a property
type CreatePropertyRequest struct {
	Code        string          `json:"code" binding:"required"`
	Address     string          `json:"address" binding:"required"`
	Type        string          `json:"type"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
}

// AssignLeaseRequest represents a request to place a tenant on a property
type AssignLeaseRequest struct {
	TenantName    string     `json:"tenant_name" binding:"required"`
	TenantContact string     `json:"tenant_contact"`
	LeaseStart    *time.Time `json:"lease_start"`
	LeaseEnd      *time.Time `json:"lease_end"`
}

// Create registers a new property under management
func (s *Service) Create(ctx context.Context, req CreatePropertyRequest) (*PropertyResponse, error) {
	existing, err := s.properties.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_RECORD", "Property with this code already exists")
	}

	p, err := property.NewProperty(req.Code, req.Address, req.Type, req.MonthlyRent)
	if err != nil {
		return nil, err
	}

	if err := s.properties.Save(ctx, p); err != nil {
		return nil, err
	}

	response := toPropertyResponse(p)
	return &response, nil
}

// GetByID retrieves a property by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.findProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toPropertyResponse(p)
	return &response, nil
}

// FindByCode looks a property up by its human-facing code
func (s *Service) FindByCode(ctx context.Context, code string) (*PropertyResponse, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Property code is required")
	}

	p, err := s.properties.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	response := toPropertyResponse(p)
	return &response, nil
}

// List returns all properties, most recently created first
func (s *Service) List(ctx context.Context) ([]PropertyResponse, error) {
	properties, err := s.properties.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		responses = append(responses, toPropertyResponse(&properties[i]))
	}
	return responses, nil
}

// AssignLease records a lease on the property and activates it
func (s *Service) AssignLease(ctx context.Context, id uuid.UUID, req AssignLeaseRequest) (*PropertyResponse, error) {
	p, err := s.findProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	var start, end time.Time
	if req.LeaseStart != nil {
		start = *req.LeaseStart
	}
	if req.LeaseEnd != nil {
		end = *req.LeaseEnd
	}
	if err := p.AssignLease(req.TenantName, req.TenantContact, start, end); err != nil {
		return nil, err
	}

	if err := s.properties.Save(ctx, p); err != nil {
		return nil, err
	}

	response := toPropertyResponse(p)
	return &response, nil
}

// EndLease closes out the active lease on the property
func (s *Service) EndLease(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.findProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.EndLease(); err != nil {
		return nil, err
	}

	if err := s.properties.Save(ctx, p); err != nil {
		return nil, err
	}

	response := toPropertyResponse(p)
	return &response, nil
}

func (s *Service) findProperty(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	p, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}
	return p, nil
}

func toPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:            p.ID,
		Code:          p.Code,
		Address:       p.Address,
		Type:          p.Type,
		LeaseStart:    p.LeaseStart,
		LeaseEnd:      p.LeaseEnd,
		MonthlyRent:   p.MonthlyRent,
		TenantName:    p.TenantName,
		TenantContact: p.TenantContact,
		Status:        p.Status.String(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
