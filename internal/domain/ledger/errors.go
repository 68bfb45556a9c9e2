package ledger

import "github.com/nasmila140/property-lease-management-system/internal/domain/shared"

// Ledger-specific domain errors
var (
	// ErrDuplicateBillingPeriod is returned when a bill already exists for a tenant and period
	ErrDuplicateBillingPeriod = shared.NewDomainError("DUPLICATE_RECORD", "Bill already exists for this tenant and month")

	// ErrBillingPeriodNotFound is returned when a point lookup matches no bill
	ErrBillingPeriodNotFound = shared.NewDomainError("NOT_FOUND", "No bill found for selected tenant and month")

	// ErrPaymentNotFound is returned when a property payment lookup matches nothing
	ErrPaymentNotFound = shared.NewDomainError("NOT_FOUND", "Payment not found")

	// ErrNoChange is the soft failure for an update that produced no delta
	ErrNoChange = shared.NewDomainError("NO_CHANGE", "No changes made to the bill")
)
