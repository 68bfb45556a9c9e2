package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
)

// PropertyPaymentRepository is an in-memory payment store for tests and
// local development.
type PropertyPaymentRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]ledger.PropertyPayment
}

// NewPropertyPaymentRepository constructs an empty repository
func NewPropertyPaymentRepository() *PropertyPaymentRepository {
	return &PropertyPaymentRepository{data: make(map[uuid.UUID]ledger.PropertyPayment)}
}

// FindByID finds a payment by its ID
func (r *PropertyPaymentRepository) FindByID(_ context.Context, id uuid.UUID) (*ledger.PropertyPayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// FindByProperty returns all payments for a property, most recent due first
func (r *PropertyPaymentRepository) FindByProperty(_ context.Context, propertyID uuid.UUID) ([]ledger.PropertyPayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]ledger.PropertyPayment, 0)
	for _, p := range r.data {
		if p.PropertyID == propertyID {
			results = append(results, p)
		}
	}
	sortByDueDesc(results)
	return results, nil
}

// FindAll returns every payment, most recent due first
func (r *PropertyPaymentRepository) FindAll(_ context.Context) ([]ledger.PropertyPayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]ledger.PropertyPayment, 0, len(r.data))
	for _, p := range r.data {
		results = append(results, p)
	}
	sortByDueDesc(results)
	return results, nil
}

// FindPendingDueBefore returns pending payments due before the cutoff,
// oldest due first
func (r *PropertyPaymentRepository) FindPendingDueBefore(_ context.Context, cutoff time.Time) ([]ledger.PropertyPayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]ledger.PropertyPayment, 0)
	for _, p := range r.data {
		if p.Status == ledger.PaymentStatusPending && p.DueDate.Before(cutoff) {
			results = append(results, p)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].DueDate.Before(results[j].DueDate)
	})
	return results, nil
}

// Save inserts a new payment
func (r *PropertyPaymentRepository) Save(_ context.Context, p *ledger.PropertyPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[p.ID] = snapshotPayment(p)
	return nil
}

// Update persists changes to an existing payment
func (r *PropertyPaymentRepository) Update(_ context.Context, p *ledger.PropertyPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[p.ID]; !ok {
		return ledger.ErrPaymentNotFound
	}
	r.data[p.ID] = snapshotPayment(p)
	return nil
}

func sortByDueDesc(payments []ledger.PropertyPayment) {
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].DueDate.After(payments[j].DueDate)
	})
}

var _ ledger.PropertyPaymentRepository = (*PropertyPaymentRepository)(nil)

// snapshotPayment copies the aggregate for storage without its pending
// events, mirroring the database path where events are never persisted
func snapshotPayment(p *ledger.PropertyPayment) ledger.PropertyPayment {
	cp := *p
	cp.ClearDomainEvents()
	return cp
}
