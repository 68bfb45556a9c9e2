package models

import (
	"time"

	"github.com/nasmila140/property-lease-management-system/internal/domain/property"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for managed properties
type PropertyModel struct {
	BaseModel
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Address       string          `gorm:"type:varchar(500);not null"`
	Type          string          `gorm:"type:varchar(50)"`
	LeaseStart    *time.Time
	LeaseEnd      *time.Time
	MonthlyRent   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TenantName    string          `gorm:"type:varchar(200)"`
	TenantContact string          `gorm:"type:varchar(100)"`
	Status        property.Status `gorm:"type:varchar(10);not null;default:'vacant';index"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		BaseEntity:    m.BaseModel.ToDomain(),
		Code:          m.Code,
		Address:       m.Address,
		Type:          m.Type,
		LeaseStart:    m.LeaseStart,
		LeaseEnd:      m.LeaseEnd,
		MonthlyRent:   m.MonthlyRent,
		TenantName:    m.TenantName,
		TenantContact: m.TenantContact,
		Status:        m.Status,
	}
}

// FromDomain populates the persistence model from a domain Property
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Code = p.Code
	m.Address = p.Address
	m.Type = p.Type
	m.LeaseStart = p.LeaseStart
	m.LeaseEnd = p.LeaseEnd
	m.MonthlyRent = p.MonthlyRent
	m.TenantName = p.TenantName
	m.TenantContact = p.TenantContact
	m.Status = p.Status
}
