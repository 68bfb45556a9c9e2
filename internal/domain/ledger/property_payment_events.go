package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
)

// PropertyPaymentPaidEvent is raised when a lease payment is settled
type PropertyPaymentPaidEvent struct {
	shared.BaseDomainEvent
	PaymentID  uuid.UUID       `json:"payment_id"`
	PropertyID uuid.UUID       `json:"property_id"`
	Amount     decimal.Decimal `json:"amount"`
	PaidDate   time.Time       `json:"paid_date"`
}

// EventType returns the event type name
func (e *PropertyPaymentPaidEvent) EventType() string {
	return "PropertyPaymentPaid"
}

// NewPropertyPaymentPaidEvent creates a new PropertyPaymentPaidEvent
func NewPropertyPaymentPaidEvent(p *PropertyPayment) *PropertyPaymentPaidEvent {
	paidDate := time.Now()
	if p.PaidDate != nil {
		paidDate = *p.PaidDate
	}
	return &PropertyPaymentPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PropertyPaymentPaid", "PropertyPayment", p.ID),
		PaymentID:       p.ID,
		PropertyID:      p.PropertyID,
		Amount:          p.Amount,
		PaidDate:        paidDate,
	}
}

// PropertyPaymentOverdueEvent is raised when a pending payment passes its due date
type PropertyPaymentOverdueEvent struct {
	shared.BaseDomainEvent
	PaymentID  uuid.UUID       `json:"payment_id"`
	PropertyID uuid.UUID       `json:"property_id"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"due_date"`
}

// EventType returns the event type name
func (e *PropertyPaymentOverdueEvent) EventType() string {
	return "PropertyPaymentOverdue"
}

// NewPropertyPaymentOverdueEvent creates a new PropertyPaymentOverdueEvent
func NewPropertyPaymentOverdueEvent(p *PropertyPayment) *PropertyPaymentOverdueEvent {
	return &PropertyPaymentOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PropertyPaymentOverdue", "PropertyPayment", p.ID),
		PaymentID:       p.ID,
		PropertyID:      p.PropertyID,
		Amount:          p.Amount,
		DueDate:         p.DueDate,
	}
}
