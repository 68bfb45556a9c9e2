package ledger

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/domain/property"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
	"github.com/nasmila140/property-lease-management-system/internal/domain/tenant"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/cache"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/telemetry"
)

// displayLimit caps the upcoming/overdue display lists. Headline counts are
// computed over the untruncated sets.
const displayLimit = 5

// recentBillLimit caps the recent-bills list on the ledger overview
const recentBillLimit = 10

// paymentOverviewCacheKey is the cache key for the payment dashboard view
const paymentOverviewCacheKey = "dashboard:payment_overview"

// DashboardService aggregates the full property and payment sets into the
// dashboard views. It trusts stored payment status; the pending-to-overdue
// reclassification is the explicit MarkPaymentOverdue transition.
type DashboardService struct {
	bills      ledger.BillingPeriodRepository
	payments   ledger.PropertyPaymentRepository
	tenants    tenant.Repository
	properties property.Repository
	metrics    *telemetry.LedgerMetrics
	events     shared.EventPublisher

	summaryCache cache.Store
	cacheTTL     time.Duration

	now func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	bills ledger.BillingPeriodRepository,
	payments ledger.PropertyPaymentRepository,
	tenants tenant.Repository,
	properties property.Repository,
) *DashboardService {
	return &DashboardService{
		bills:      bills,
		payments:   payments,
		tenants:    tenants,
		properties: properties,
		now:        time.Now,
	}
}

// SetMetrics sets the optional ledger metrics collector
func (s *DashboardService) SetMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// SetClock overrides the wall clock, used by tests
func (s *DashboardService) SetClock(now func() time.Time) {
	s.now = now
}

// SetEventPublisher sets the optional domain event publisher
func (s *DashboardService) SetEventPublisher(events shared.EventPublisher) {
	s.events = events
}

// SetSummaryCache enables read-through caching of the payment overview. The
// TTL bounds staleness for writes the service does not see, such as bill
// changes; the service's own payment writes invalidate eagerly.
func (s *DashboardService) SetSummaryCache(store cache.Store, ttl time.Duration) {
	s.summaryCache = store
	s.cacheTTL = ttl
}

func (s *DashboardService) invalidateOverview(ctx context.Context) {
	if s.summaryCache != nil {
		_ = s.summaryCache.Delete(ctx, paymentOverviewCacheKey)
	}
}

// publishEvents drains the aggregate's pending events onto the bus. Event
// delivery never fails the operation that produced them.
func (s *DashboardService) publishEvents(ctx context.Context, agg shared.AggregateRoot) {
	if s.events != nil {
		_ = s.events.Publish(ctx, agg.GetDomainEvents()...)
	}
	agg.ClearDomainEvents()
}

// LedgerStats are the headline counters of the billing ledger
type LedgerStats struct {
	TotalTenants int64 `json:"total_tenants"`
	TotalBills   int64 `json:"total_bills"`
	PaidBills    int64 `json:"paid_bills"`
	UnpaidBills  int64 `json:"unpaid_bills"`
}

// LedgerOverviewResponse is the tenant-billing half of the dashboard
type LedgerOverviewResponse struct {
	Stats       LedgerStats             `json:"stats"`
	RecentBills []BillingPeriodResponse `json:"recent_bills"`
}

// PaymentResponse represents a lease payment in API responses
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	PropertyID uuid.UUID       `json:"property_id"`
	Type       string          `json:"payment_type"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"due_date"`
	PaidDate   *time.Time      `json:"paid_date,omitempty"`
	Status     string          `json:"status"`
	Method     *string         `json:"payment_method,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// PropertyStats summarizes the managed portfolio
type PropertyStats struct {
	TotalProperties  int             `json:"total_properties"`
	ActiveProperties int             `json:"active_properties"`
	MonthlyRentTotal decimal.Decimal `json:"monthly_rent_total"`
}

// PaymentOverviewResponse is the lease-payment half of the dashboard
type PaymentOverviewResponse struct {
	Properties       PropertyStats     `json:"properties"`
	PaidSum          decimal.Decimal   `json:"paid_sum"`
	PendingSum       decimal.Decimal   `json:"pending_sum"`
	OverdueSum       decimal.Decimal   `json:"overdue_sum"`
	UpcomingPayments []PaymentResponse `json:"upcoming_payments"`
	OverduePayments  []PaymentResponse `json:"overdue_payments"`
	OverdueCount     int               `json:"overdue_count"`
}

// LedgerOverview returns tenant-billing statistics and the most recently
// created bills
func (s *DashboardService) LedgerOverview(ctx context.Context) (*LedgerOverviewResponse, error) {
	totalTenants, err := s.tenants.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBills, err := s.bills.Count(ctx, ledger.BillingHistoryFilter{})
	if err != nil {
		return nil, err
	}
	paid := ledger.BillStatusPaid
	paidBills, err := s.bills.Count(ctx, ledger.BillingHistoryFilter{Status: &paid})
	if err != nil {
		return nil, err
	}
	unpaid := ledger.BillStatusUnpaid
	unpaidBills, err := s.bills.Count(ctx, ledger.BillingHistoryFilter{Status: &unpaid})
	if err != nil {
		return nil, err
	}

	recent, err := s.bills.FindRecent(ctx, recentBillLimit)
	if err != nil {
		return nil, err
	}

	resp := &LedgerOverviewResponse{
		Stats: LedgerStats{
			TotalTenants: totalTenants,
			TotalBills:   totalBills,
			PaidBills:    paidBills,
			UnpaidBills:  unpaidBills,
		},
		RecentBills: make([]BillingPeriodResponse, 0, len(recent)),
	}
	for i := range recent {
		resp.RecentBills = append(resp.RecentBills, *toBillingPeriodResponse(&recent[i]))
	}
	return resp, nil
}

// PaymentOverview aggregates all properties and payments client-side: the
// dataset is small enough that no store-side filters are applied.
func (s *DashboardService) PaymentOverview(ctx context.Context) (*PaymentOverviewResponse, error) {
	if s.summaryCache != nil {
		if raw, err := s.summaryCache.Get(ctx, paymentOverviewCacheKey); err == nil {
			var cached PaymentOverviewResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	properties, err := s.properties.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &PaymentOverviewResponse{
		PaidSum:          decimal.Zero,
		PendingSum:       decimal.Zero,
		OverdueSum:       decimal.Zero,
		UpcomingPayments: make([]PaymentResponse, 0, displayLimit),
		OverduePayments:  make([]PaymentResponse, 0, displayLimit),
	}

	resp.Properties.TotalProperties = len(properties)
	resp.Properties.MonthlyRentTotal = decimal.Zero
	for i := range properties {
		if properties[i].IsActive() {
			resp.Properties.ActiveProperties++
		}
		resp.Properties.MonthlyRentTotal = resp.Properties.MonthlyRentTotal.Add(properties[i].MonthlyRent)
	}

	var pending, overdue []ledger.PropertyPayment
	for i := range payments {
		switch payments[i].Status {
		case ledger.PaymentStatusPaid:
			resp.PaidSum = resp.PaidSum.Add(payments[i].Amount)
		case ledger.PaymentStatusPending:
			resp.PendingSum = resp.PendingSum.Add(payments[i].Amount)
			pending = append(pending, payments[i])
		case ledger.PaymentStatusOverdue:
			resp.OverdueSum = resp.OverdueSum.Add(payments[i].Amount)
			overdue = append(overdue, payments[i])
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].DueDate.Before(pending[j].DueDate)
	})
	for i := range pending {
		if i >= displayLimit {
			break
		}
		resp.UpcomingPayments = append(resp.UpcomingPayments, toPaymentResponse(&pending[i]))
	}

	resp.OverdueCount = len(overdue)
	for i := range overdue {
		if i >= displayLimit {
			break
		}
		resp.OverduePayments = append(resp.OverduePayments, toPaymentResponse(&overdue[i]))
	}

	if s.summaryCache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			_ = s.summaryCache.Set(ctx, paymentOverviewCacheKey, raw, s.cacheTTL)
		}
	}
	return resp, nil
}

// RecordPaymentRequest represents a request to schedule a lease payment
type RecordPaymentRequest struct {
	PropertyID uuid.UUID       `json:"property_id" binding:"required"`
	Type       string          `json:"payment_type" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"due_date" binding:"required"`
	Notes      string          `json:"notes"`
}

// RecordPayment schedules a new lease payment against a managed property.
// The payment starts out pending.
func (s *DashboardService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	prop, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	p, err := ledger.NewPropertyPayment(req.PropertyID, ledger.PaymentType(req.Type), req.Amount, req.DueDate)
	if err != nil {
		return nil, err
	}
	p.SetNotes(req.Notes)

	if err := s.payments.Save(ctx, p); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, p)
	s.invalidateOverview(ctx)

	resp := toPaymentResponse(p)
	return &resp, nil
}

// ListPayments returns a property's payments, most recent due first
func (s *DashboardService) ListPayments(ctx context.Context, propertyID uuid.UUID) ([]PaymentResponse, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Property ID is required")
	}
	payments, err := s.payments.FindByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, toPaymentResponse(&payments[i]))
	}
	return responses, nil
}

// SettlePayment marks a lease payment as paid
func (s *DashboardService) SettlePayment(ctx context.Context, id uuid.UUID, method string) (*PaymentResponse, error) {
	p, err := s.findPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.MarkPaid(s.now(), method); err != nil {
		return nil, err
	}
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, p)
	s.invalidateOverview(ctx)

	resp := toPaymentResponse(p)
	return &resp, nil
}

// MarkPaymentOverdue performs the explicit pending-to-overdue transition for
// a payment whose due date has passed
func (s *DashboardService) MarkPaymentOverdue(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	p, err := s.findPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.MarkOverdue(s.now()); err != nil {
		return nil, err
	}
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, p)
	s.invalidateOverview(ctx)

	if s.metrics != nil {
		s.metrics.RecordPaymentOverdue(ctx, p.Amount)
	}
	resp := toPaymentResponse(p)
	return &resp, nil
}

func (s *DashboardService) findPayment(ctx context.Context, id uuid.UUID) (*ledger.PropertyPayment, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment ID is required")
	}
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ledger.ErrPaymentNotFound
	}
	return p, nil
}

func toPaymentResponse(p *ledger.PropertyPayment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		PropertyID: p.PropertyID,
		Type:       p.Type.String(),
		Amount:     p.Amount,
		DueDate:    p.DueDate,
		PaidDate:   p.PaidDate,
		Status:     p.Status.String(),
		Method:     p.Method,
		Notes:      p.Notes,
	}
}
