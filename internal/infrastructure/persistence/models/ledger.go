package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillingPeriodModel is the persistence model for the BillingPeriod aggregate.
// The composite unique index on (tenant_id, year, month) is the storage-level
// backstop for the one-bill-per-tenant-per-month rule.
type BillingPeriodModel struct {
	BaseModel
	TenantID     uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_bills_tenant_period,priority:1;index"`
	Year         int               `gorm:"not null;uniqueIndex:idx_bills_tenant_period,priority:2;index"`
	Month        int               `gorm:"not null;uniqueIndex:idx_bills_tenant_period,priority:3"`
	Rent         decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	WaterCharge  decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	SewageCharge decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	Total        decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	Status       ledger.BillStatus `gorm:"type:varchar(10);not null;default:'unpaid';index"`
}

// TableName returns the table name for GORM
func (BillingPeriodModel) TableName() string {
	return "billing_periods"
}

// ToDomain converts the persistence model to a domain BillingPeriod
func (m *BillingPeriodModel) ToDomain() *ledger.BillingPeriod {
	return &ledger.BillingPeriod{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		TenantID:          m.TenantID,
		Period:            ledger.Period{Month: m.Month, Year: m.Year},
		Rent:              m.Rent,
		WaterCharge:       m.WaterCharge,
		SewageCharge:      m.SewageCharge,
		Total:             m.Total,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain BillingPeriod
func (m *BillingPeriodModel) FromDomain(bp *ledger.BillingPeriod) {
	m.FromDomainBaseEntity(bp.BaseEntity)
	m.TenantID = bp.TenantID
	m.Year = bp.Period.Year
	m.Month = bp.Period.Month
	m.Rent = bp.Rent
	m.WaterCharge = bp.WaterCharge
	m.SewageCharge = bp.SewageCharge
	m.Total = bp.Total
	m.Status = bp.Status
}

// PropertyPaymentModel is the persistence model for the PropertyPayment aggregate
type PropertyPaymentModel struct {
	BaseModel
	PropertyID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Type       ledger.PaymentType   `gorm:"type:varchar(20);not null"`
	Amount     decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	DueDate    time.Time            `gorm:"not null;index"`
	PaidDate   *time.Time
	Status     ledger.PaymentStatus `gorm:"type:varchar(10);not null;default:'pending';index"`
	Method     *string              `gorm:"type:varchar(50)"`
	Notes      string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PropertyPaymentModel) TableName() string {
	return "property_payments"
}

// ToDomain converts the persistence model to a domain PropertyPayment
func (m *PropertyPaymentModel) ToDomain() *ledger.PropertyPayment {
	return &ledger.PropertyPayment{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		PropertyID:        m.PropertyID,
		Type:              m.Type,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		PaidDate:          m.PaidDate,
		Status:            m.Status,
		Method:            m.Method,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain PropertyPayment
func (m *PropertyPaymentModel) FromDomain(p *ledger.PropertyPayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.PropertyID = p.PropertyID
	m.Type = p.Type
	m.Amount = p.Amount
	m.DueDate = p.DueDate
	m.PaidDate = p.PaidDate
	m.Status = p.Status
	m.Method = p.Method
	m.Notes = p.Notes
}
