package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
)

// BillingPeriod is one tenant's recurring-charge record for a specific month.
// Total is always derived from the three component charges; callers can never
// set it directly. At most one BillingPeriod exists per (tenant, period).
type BillingPeriod struct {
	shared.BaseAggregateRoot
	TenantID     uuid.UUID
	Period       Period
	Rent         decimal.Decimal
	WaterCharge  decimal.Decimal
	SewageCharge decimal.Decimal
	Total        decimal.Decimal
	Status       BillStatus
}

// NewBillingPeriod creates a new billing period record.
// The total is computed from the component charges; status defaults to unpaid
// when empty.
func NewBillingPeriod(
	tenantID uuid.UUID,
	period Period,
	rent, waterCharge, sewageCharge decimal.Decimal,
	status BillStatus,
) (*BillingPeriod, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant ID is required")
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if err := validateCharge("rent", rent); err != nil {
		return nil, err
	}
	if err := validateCharge("water charge", waterCharge); err != nil {
		return nil, err
	}
	if err := validateCharge("sewage charge", sewageCharge); err != nil {
		return nil, err
	}
	if status == "" {
		status = BillStatusUnpaid
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid bill status: %s", status))
	}

	bp := &BillingPeriod{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		Period:            period,
		Rent:              rent,
		WaterCharge:       waterCharge,
		SewageCharge:      sewageCharge,
		Total:             sumCharges(rent, waterCharge, sewageCharge),
		Status:            status,
	}
	bp.AddDomainEvent(NewBillingPeriodCreatedEvent(bp))
	return bp, nil
}

// ApplyCharges replaces the component charges and status, re-deriving the
// total. It reports whether anything actually changed so callers can
// distinguish a no-op update from a real one.
func (bp *BillingPeriod) ApplyCharges(rent, waterCharge, sewageCharge decimal.Decimal, status BillStatus) (bool, error) {
	if err := validateCharge("rent", rent); err != nil {
		return false, err
	}
	if err := validateCharge("water charge", waterCharge); err != nil {
		return false, err
	}
	if err := validateCharge("sewage charge", sewageCharge); err != nil {
		return false, err
	}
	if !status.IsValid() {
		return false, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid bill status: %s", status))
	}

	changed := !bp.Rent.Equal(rent) ||
		!bp.WaterCharge.Equal(waterCharge) ||
		!bp.SewageCharge.Equal(sewageCharge) ||
		bp.Status != status
	if !changed {
		return false, nil
	}

	bp.Rent = rent
	bp.WaterCharge = waterCharge
	bp.SewageCharge = sewageCharge
	bp.Total = sumCharges(rent, waterCharge, sewageCharge)
	bp.Status = status
	bp.Touch()
	bp.AddDomainEvent(NewBillingPeriodUpdatedEvent(bp))
	return true, nil
}

// IsPaid reports whether the bill has been settled
func (bp *BillingPeriod) IsPaid() bool {
	return bp.Status == BillStatusPaid
}

// Key returns the uniqueness key of the record
func (bp *BillingPeriod) Key() BillingKey {
	return BillingKey{TenantID: bp.TenantID, Period: bp.Period}
}

// BillingKey is the (tenant, period) uniqueness key of a billing record
type BillingKey struct {
	TenantID uuid.UUID
	Period   Period
}

func sumCharges(rent, water, sewage decimal.Decimal) decimal.Decimal {
	return rent.Add(water).Add(sewage)
}

func validateCharge(name string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid %s: amount cannot be negative", name))
	}
	return nil
}

var _ shared.AggregateRoot = (*BillingPeriod)(nil)
