package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
	"github.com/nasmila140/property-lease-management-system/internal/infrastructure/telemetry"
)

// BillingService owns the billing-period lifecycle: validation, total
// derivation, uniqueness enforcement, status transitions, and the filtered
// history view. It is stateless; the acting admin is resolved by the request
// layer and never read from ambient state.
type BillingService struct {
	bills   ledger.BillingPeriodRepository
	metrics *telemetry.LedgerMetrics
	events  shared.EventPublisher
}

// NewBillingService creates a new BillingService
func NewBillingService(bills ledger.BillingPeriodRepository) *BillingService {
	return &BillingService{bills: bills}
}

// SetMetrics sets the optional ledger metrics collector
func (s *BillingService) SetMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// SetEventPublisher sets the optional domain event publisher
func (s *BillingService) SetEventPublisher(p shared.EventPublisher) {
	s.events = p
}

// publishEvents drains the aggregate's pending events onto the bus. Event
// delivery never fails the operation that produced them.
func (s *BillingService) publishEvents(ctx context.Context, agg shared.AggregateRoot) {
	if s.events != nil {
		_ = s.events.Publish(ctx, agg.GetDomainEvents()...)
	}
	agg.ClearDomainEvents()
}

// BillingPeriodResponse represents a billing period in API responses
type BillingPeriodResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Rent         decimal.Decimal `json:"rent"`
	WaterCharge  decimal.Decimal `json:"water_charge"`
	SewageCharge decimal.Decimal `json:"sewage_charge"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AddBillingPeriodRequest represents a request to record a new bill
type AddBillingPeriodRequest struct {
	TenantID     uuid.UUID       `json:"tenant_id" binding:"required"`
	Month        int             `json:"month" binding:"required"`
	Year         int             `json:"year" binding:"required"`
	Rent         decimal.Decimal `json:"rent"`
	WaterCharge  decimal.Decimal `json:"water_charge"`
	SewageCharge decimal.Decimal `json:"sewage_charge"`
	Status       string          `json:"status"`
}

// UpdateBillingPeriodRequest represents a request to change an existing bill
type UpdateBillingPeriodRequest struct {
	Rent         decimal.Decimal `json:"rent"`
	WaterCharge  decimal.Decimal `json:"water_charge"`
	SewageCharge decimal.Decimal `json:"sewage_charge"`
	Status       string          `json:"status" binding:"required"`
}

// UpdateBillingPeriodResult reports the outcome of an update
type UpdateBillingPeriodResult struct {
	Changed bool                   `json:"changed"`
	Bill    *BillingPeriodResponse `json:"bill"`
}

// BillingHistoryFilter carries the optional history filters
type BillingHistoryFilter struct {
	TenantID *uuid.UUID
	Status   *string
	Year     *int
}

// BillingSummary aggregates the filtered history
type BillingSummary struct {
	TotalRecords int             `json:"total_records"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	UnpaidAmount decimal.Decimal `json:"unpaid_amount"`
}

// BillingHistoryResponse is the ordered history plus its summary
type BillingHistoryResponse struct {
	Bills   []BillingPeriodResponse `json:"bills"`
	Summary BillingSummary          `json:"summary"`
}

// AddBillingPeriod records a new bill for a tenant and period. All validation
// happens before any store call; on success exactly one write is issued. A
// second bill for the same (tenant, period) fails with DUPLICATE_RECORD -
// checked here and backstopped by the store's unique constraint.
func (s *BillingService) AddBillingPeriod(ctx context.Context, req AddBillingPeriodRequest) (*BillingPeriodResponse, error) {
	period, err := ledger.NewPeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	bp, err := ledger.NewBillingPeriod(
		req.TenantID,
		period,
		req.Rent,
		req.WaterCharge,
		req.SewageCharge,
		ledger.BillStatus(req.Status),
	)
	if err != nil {
		return nil, err
	}

	exists, err := s.bills.ExistsByTenantAndPeriod(ctx, req.TenantID, period)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ledger.ErrDuplicateBillingPeriod
	}

	if err := s.bills.Save(ctx, bp); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, bp)

	if s.metrics != nil {
		s.metrics.RecordBillCreated(ctx, bp.Total, bp.Status.String())
	}
	return toBillingPeriodResponse(bp), nil
}

// UpdateBillingPeriod re-derives the total from the supplied charges and
// applies them with the status to the bill matching id. An update whose
// values equal the stored ones is the soft failure NO_CHANGE, distinct from
// NOT_FOUND.
func (s *BillingService) UpdateBillingPeriod(ctx context.Context, id uuid.UUID, req UpdateBillingPeriodRequest) (*UpdateBillingPeriodResult, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bill ID is required")
	}

	bp, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bp == nil {
		return nil, ledger.ErrBillingPeriodNotFound
	}

	changed, err := bp.ApplyCharges(req.Rent, req.WaterCharge, req.SewageCharge, ledger.BillStatus(req.Status))
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ledger.ErrNoChange
	}

	if err := s.bills.Update(ctx, bp); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, bp)

	return &UpdateBillingPeriodResult{
		Changed: true,
		Bill:    toBillingPeriodResponse(bp),
	}, nil
}

// FindBillingPeriod is the exact point lookup on the (tenant, period) key
func (s *BillingService) FindBillingPeriod(ctx context.Context, tenantID uuid.UUID, month, year int) (*BillingPeriodResponse, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant ID is required")
	}
	period, err := ledger.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	bp, err := s.bills.FindByTenantAndPeriod(ctx, tenantID, period)
	if err != nil {
		return nil, err
	}
	if bp == nil {
		return nil, ledger.ErrBillingPeriodNotFound
	}
	return toBillingPeriodResponse(bp), nil
}

// ListBillingHistory returns the filtered history, most recent period first,
// together with its summary. Pure read; issues no writes.
func (s *BillingService) ListBillingHistory(ctx context.Context, filter BillingHistoryFilter) (*BillingHistoryResponse, error) {
	domainFilter := ledger.BillingHistoryFilter{
		TenantID: filter.TenantID,
		Year:     filter.Year,
	}
	if filter.Status != nil {
		status := ledger.BillStatus(*filter.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid status filter: "+*filter.Status)
		}
		domainFilter.Status = &status
	}

	bills, err := s.bills.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	resp := &BillingHistoryResponse{
		Bills:   make([]BillingPeriodResponse, 0, len(bills)),
		Summary: summarize(bills),
	}
	for i := range bills {
		resp.Bills = append(resp.Bills, *toBillingPeriodResponse(&bills[i]))
	}
	return resp, nil
}

// summarize buckets every bill's total into paid or unpaid. Any status other
// than paid counts as unpaid; there is no intermediate bucket at this
// granularity.
func summarize(bills []ledger.BillingPeriod) BillingSummary {
	summary := BillingSummary{
		TotalRecords: len(bills),
		TotalAmount:  decimal.Zero,
		PaidAmount:   decimal.Zero,
		UnpaidAmount: decimal.Zero,
	}
	for i := range bills {
		total := bills[i].Total
		summary.TotalAmount = summary.TotalAmount.Add(total)
		if bills[i].Status == ledger.BillStatusPaid {
			summary.PaidAmount = summary.PaidAmount.Add(total)
		} else {
			summary.UnpaidAmount = summary.UnpaidAmount.Add(total)
		}
	}
	return summary
}

func toBillingPeriodResponse(bp *ledger.BillingPeriod) *BillingPeriodResponse {
	return &BillingPeriodResponse{
		ID:           bp.ID,
		TenantID:     bp.TenantID,
		Month:        bp.Period.Month,
		Year:         bp.Period.Year,
		Rent:         bp.Rent,
		WaterCharge:  bp.WaterCharge,
		SewageCharge: bp.SewageCharge,
		Total:        bp.Total,
		Status:       bp.Status.String(),
		CreatedAt:    bp.CreatedAt,
		UpdatedAt:    bp.UpdatedAt,
	}
}
