package models

import (
	"github.com/nasmila140/property-lease-management-system/internal/domain/tenant"
)

// TenantModel is the persistence model for tenants
type TenantModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Contact string `gorm:"type:varchar(100)"`
	Email   string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *tenant.Tenant {
	return &tenant.Tenant{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Contact:    m.Contact,
		Email:      m.Email,
	}
}

// FromDomain populates the persistence model from a domain Tenant
func (m *TenantModel) FromDomain(t *tenant.Tenant) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
	m.Contact = t.Contact
	m.Email = t.Email
}
