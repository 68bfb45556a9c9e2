package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BillingHistoryFilter narrows billing history queries. Each field is
// independently optional; provided fields combine with AND semantics.
type BillingHistoryFilter struct {
	TenantID *uuid.UUID
	Status   *BillStatus
	Year     *int
}

// BillingPeriodRepository is the ledger store contract for tenant bills.
// Implementations must enforce the (tenant, period) uniqueness key with a
// storage-level constraint and map the resulting conflict onto
// ErrDuplicateBillingPeriod, so concurrent creates cannot race past the
// engine-side existence check.
type BillingPeriodRepository interface {
	// FindByID finds a billing period by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*BillingPeriod, error)

	// FindByTenantAndPeriod performs the exact point lookup on the uniqueness key
	FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period Period) (*BillingPeriod, error)

	// ExistsByTenantAndPeriod checks for a record with the same uniqueness key
	ExistsByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period Period) (bool, error)

	// FindAll returns the filtered history ordered by year desc, month desc,
	// created_at desc (most recent period first)
	FindAll(ctx context.Context, filter BillingHistoryFilter) ([]BillingPeriod, error)

	// FindRecent returns the most recently created bills, newest first
	FindRecent(ctx context.Context, limit int) ([]BillingPeriod, error)

	// Save inserts a new billing period
	Save(ctx context.Context, bp *BillingPeriod) error

	// Update persists changes to an existing billing period
	Update(ctx context.Context, bp *BillingPeriod) error

	// Count counts billing periods matching the filter
	Count(ctx context.Context, filter BillingHistoryFilter) (int64, error)
}

// PropertyPaymentRepository is the ledger store contract for lease payments
type PropertyPaymentRepository interface {
	// FindByID finds a payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PropertyPayment, error)

	// FindByProperty returns all payments for a property, most recent due first
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]PropertyPayment, error)

	// FindAll returns every payment, most recent due first
	FindAll(ctx context.Context) ([]PropertyPayment, error)

	// FindPendingDueBefore returns pending payments whose due date is
	// strictly before the cutoff, oldest due first
	FindPendingDueBefore(ctx context.Context, cutoff time.Time) ([]PropertyPayment, error)

	// Save inserts a new payment
	Save(ctx context.Context, p *PropertyPayment) error

	// Update persists changes to an existing payment
	Update(ctx context.Context, p *PropertyPayment) error
}
