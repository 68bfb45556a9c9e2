package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
)

// BillingPeriodRepository is an in-memory billing store used by
// application-layer tests and local development. It enforces the same
// (tenant, period) uniqueness the SQL store does with its unique index.
type BillingPeriodRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]ledger.BillingPeriod
	seq  map[uuid.UUID]int64 // insertion order, tiebreaker alongside CreatedAt
	next int64
}

// NewBillingPeriodRepository constructs an empty repository
func NewBillingPeriodRepository() *BillingPeriodRepository {
	return &BillingPeriodRepository{
		data: make(map[uuid.UUID]ledger.BillingPeriod),
		seq:  make(map[uuid.UUID]int64),
	}
}

// FindByID finds a billing period by its ID
func (r *BillingPeriodRepository) FindByID(_ context.Context, id uuid.UUID) (*ledger.BillingPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bp, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &bp, nil
}

// FindByTenantAndPeriod performs the exact point lookup on the uniqueness key
func (r *BillingPeriodRepository) FindByTenantAndPeriod(_ context.Context, tenantID uuid.UUID, period ledger.Period) (*ledger.BillingPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, bp := range r.data {
		if bp.TenantID == tenantID && bp.Period == period {
			match := bp
			return &match, nil
		}
	}
	return nil, nil
}

// ExistsByTenantAndPeriod checks for a record with the same uniqueness key
func (r *BillingPeriodRepository) ExistsByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period ledger.Period) (bool, error) {
	bp, err := r.FindByTenantAndPeriod(ctx, tenantID, period)
	if err != nil {
		return false, err
	}
	return bp != nil, nil
}

// FindAll returns the filtered history ordered by year desc, month desc,
// created_at desc
func (r *BillingPeriodRepository) FindAll(_ context.Context, filter ledger.BillingHistoryFilter) ([]ledger.BillingPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]ledger.BillingPeriod, 0, len(r.data))
	for _, bp := range r.data {
		if matchesFilter(bp, filter) {
			results = append(results, bp)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Period.Year != b.Period.Year {
			return a.Period.Year > b.Period.Year
		}
		if a.Period.Month != b.Period.Month {
			return a.Period.Month > b.Period.Month
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return r.seq[a.ID] > r.seq[b.ID]
	})
	return results, nil
}

// FindRecent returns the most recently created bills, newest first
func (r *BillingPeriodRepository) FindRecent(_ context.Context, limit int) ([]ledger.BillingPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]ledger.BillingPeriod, 0, len(r.data))
	for _, bp := range r.data {
		results = append(results, bp)
	}
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return r.seq[a.ID] > r.seq[b.ID]
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Save inserts a new billing period, rejecting uniqueness-key conflicts
func (r *BillingPeriodRepository) Save(_ context.Context, bp *ledger.BillingPeriod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.data {
		if existing.ID != bp.ID && existing.TenantID == bp.TenantID && existing.Period == bp.Period {
			return ledger.ErrDuplicateBillingPeriod
		}
	}
	r.next++
	r.seq[bp.ID] = r.next
	r.data[bp.ID] = snapshotBill(bp)
	return nil
}

// Update persists changes to an existing billing period
func (r *BillingPeriodRepository) Update(_ context.Context, bp *ledger.BillingPeriod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[bp.ID]; !ok {
		return ledger.ErrBillingPeriodNotFound
	}
	r.data[bp.ID] = snapshotBill(bp)
	return nil
}

// Count counts billing periods matching the filter
func (r *BillingPeriodRepository) Count(_ context.Context, filter ledger.BillingHistoryFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, bp := range r.data {
		if matchesFilter(bp, filter) {
			n++
		}
	}
	return n, nil
}

func matchesFilter(bp ledger.BillingPeriod, filter ledger.BillingHistoryFilter) bool {
	if filter.TenantID != nil && bp.TenantID != *filter.TenantID {
		return false
	}
	if filter.Status != nil && bp.Status != *filter.Status {
		return false
	}
	if filter.Year != nil && bp.Period.Year != *filter.Year {
		return false
	}
	return true
}

var _ ledger.BillingPeriodRepository = (*BillingPeriodRepository)(nil)

// snapshotBill copies the aggregate for storage without its pending
// events. Draining them is the caller's job; a later read must not
// resurface events that were already published.
func snapshotBill(bp *ledger.BillingPeriod) ledger.BillingPeriod {
	cp := *bp
	cp.ClearDomainEvents()
	return cp
}
