package property

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
)

// Status represents the lease state of a property
type Status string

const (
	StatusActive Status = "active"
	StatusVacant Status = "vacant"
	StatusEnded  Status = "ended"
)

// IsValid checks if the status is a valid property Status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusVacant, StatusEnded:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Property is a leased unit managed by the system. Payments reference
// properties by ID; the code is the human-facing identifier used in search.
type Property struct {
	shared.BaseEntity
	Code          string
	Address       string
	Type          string
	LeaseStart    *time.Time
	LeaseEnd      *time.Time
	MonthlyRent   decimal.Decimal
	TenantName    string
	TenantContact string
	Status        Status
}

// NewProperty creates a new property under management
func NewProperty(code, address, propertyType string, monthlyRent decimal.Decimal) (*Property, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Property code is required")
	}
	if strings.TrimSpace(address) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Property address is required")
	}
	if monthlyRent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Monthly rent cannot be negative")
	}

	return &Property{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		Address:     strings.TrimSpace(address),
		Type:        strings.TrimSpace(propertyType),
		MonthlyRent: monthlyRent,
		Status:      StatusVacant,
	}, nil
}

// AssignLease records the tenant and lease window and activates the property
func (p *Property) AssignLease(tenantName, tenantContact string, start, end time.Time) error {
	if strings.TrimSpace(tenantName) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Tenant name is required")
	}
	if !end.IsZero() && !start.IsZero() && end.Before(start) {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Lease end %s is before lease start %s", end.Format("2006-01-02"), start.Format("2006-01-02")))
	}

	p.TenantName = strings.TrimSpace(tenantName)
	p.TenantContact = strings.TrimSpace(tenantContact)
	if !start.IsZero() {
		p.LeaseStart = &start
	}
	if !end.IsZero() {
		p.LeaseEnd = &end
	}
	p.Status = StatusActive
	return nil
}

// EndLease closes out the current lease
func (p *Property) EndLease() error {
	if p.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Property has no active lease")
	}
	p.Status = StatusEnded
	return nil
}

// IsActive reports whether the property currently has an active lease
func (p *Property) IsActive() bool {
	return p.Status == StatusActive
}
