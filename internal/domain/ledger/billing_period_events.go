package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
)

// BillingPeriodCreatedEvent is raised when a new billing period is recorded
type BillingPeriodCreatedEvent struct {
	shared.BaseDomainEvent
	BillID   uuid.UUID       `json:"bill_id"`
	TenantID uuid.UUID       `json:"tenant_id"`
	Period   Period          `json:"period"`
	Total    decimal.Decimal `json:"total"`
	Status   BillStatus      `json:"status"`
}

// EventType returns the event type name
func (e *BillingPeriodCreatedEvent) EventType() string {
	return "BillingPeriodCreated"
}

// NewBillingPeriodCreatedEvent creates a new BillingPeriodCreatedEvent
func NewBillingPeriodCreatedEvent(bp *BillingPeriod) *BillingPeriodCreatedEvent {
	return &BillingPeriodCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillingPeriodCreated", "BillingPeriod", bp.ID),
		BillID:          bp.ID,
		TenantID:        bp.TenantID,
		Period:          bp.Period,
		Total:           bp.Total,
		Status:          bp.Status,
	}
}

// BillingPeriodUpdatedEvent is raised when charges or status change on a bill
type BillingPeriodUpdatedEvent struct {
	shared.BaseDomainEvent
	BillID   uuid.UUID       `json:"bill_id"`
	TenantID uuid.UUID       `json:"tenant_id"`
	Period   Period          `json:"period"`
	Total    decimal.Decimal `json:"total"`
	Status   BillStatus      `json:"status"`
}

// EventType returns the event type name
func (e *BillingPeriodUpdatedEvent) EventType() string {
	return "BillingPeriodUpdated"
}

// NewBillingPeriodUpdatedEvent creates a new BillingPeriodUpdatedEvent
func NewBillingPeriodUpdatedEvent(bp *BillingPeriod) *BillingPeriodUpdatedEvent {
	return &BillingPeriodUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillingPeriodUpdated", "BillingPeriod", bp.ID),
		BillID:          bp.ID,
		TenantID:        bp.TenantID,
		Period:          bp.Period,
		Total:           bp.Total,
		Status:          bp.Status,
	}
}
