package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
)

// PropertyPayment is a single lease payment owed against a property.
// Invariant: PaidDate is set if and only if Status is paid. The overdue
// status is stored data; reclassifying a pending payment as overdue is an
// explicit transition (MarkOverdue), never derived during reads.
type PropertyPayment struct {
	shared.BaseAggregateRoot
	PropertyID uuid.UUID
	Type       PaymentType
	Amount     decimal.Decimal
	DueDate    time.Time
	PaidDate   *time.Time
	Status     PaymentStatus
	Method     *string
	Notes      string
}

// NewPropertyPayment creates a new pending payment for a property
func NewPropertyPayment(
	propertyID uuid.UUID,
	paymentType PaymentType,
	amount decimal.Decimal,
	dueDate time.Time,
) (*PropertyPayment, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Property ID is required")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid payment type: %s", paymentType))
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount cannot be negative")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Due date is required")
	}

	return &PropertyPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		Type:              paymentType,
		Amount:            amount,
		DueDate:           dueDate,
		Status:            PaymentStatusPending,
	}, nil
}

// MarkPaid settles the payment, recording when and how it was paid
func (p *PropertyPayment) MarkPaid(paidAt time.Time, method string) error {
	if p.Status == PaymentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Payment is already paid")
	}
	if paidAt.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Paid date is required")
	}

	p.Status = PaymentStatusPaid
	p.PaidDate = &paidAt
	if method != "" {
		p.Method = &method
	}
	p.Touch()
	p.AddDomainEvent(NewPropertyPaymentPaidEvent(p))
	return nil
}

// MarkOverdue transitions a pending payment to overdue. The transition is
// only legal once the due date has passed relative to the supplied clock.
func (p *PropertyPayment) MarkOverdue(now time.Time) error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Only pending payments can become overdue, current status: %s", p.Status))
	}
	if !p.DueDate.Before(now) {
		return shared.NewDomainError("INVALID_STATE", "Payment is not past its due date")
	}

	p.Status = PaymentStatusOverdue
	p.Touch()
	p.AddDomainEvent(NewPropertyPaymentOverdueEvent(p))
	return nil
}

// SetNotes attaches free-form notes to the payment
func (p *PropertyPayment) SetNotes(notes string) {
	p.Notes = notes
	p.Touch()
}

// Validate checks the paid-date/status invariant, used by stores before writes
func (p *PropertyPayment) Validate() error {
	paid := p.Status == PaymentStatusPaid
	hasPaidDate := p.PaidDate != nil
	if paid != hasPaidDate {
		return shared.NewDomainError("INVALID_STATE", "Paid date must be set exactly when status is paid")
	}
	return nil
}

var _ shared.AggregateRoot = (*PropertyPayment)(nil)
