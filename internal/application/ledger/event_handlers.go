package ledger

import (
	"context"

	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
	"go.uber.org/zap"
)

// LedgerActivityHandler writes an audit log line for every ledger event:
// bills recorded or changed, payments settled or gone overdue.
type LedgerActivityHandler struct {
	logger *zap.Logger
}

// NewLedgerActivityHandler creates a new ledger activity handler
func NewLedgerActivityHandler(logger *zap.Logger) *LedgerActivityHandler {
	return &LedgerActivityHandler{logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (h *LedgerActivityHandler) EventTypes() []string {
	return []string{
		"BillingPeriodCreated",
		"BillingPeriodUpdated",
		"PropertyPaymentPaid",
		"PropertyPaymentOverdue",
	}
}

// Handle logs the ledger event
func (h *LedgerActivityHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *ledger.BillingPeriodCreatedEvent:
		h.logger.Info("bill recorded",
			zap.String("bill_id", e.BillID.String()),
			zap.String("tenant_id", e.TenantID.String()),
			zap.String("period", e.Period.String()),
			zap.String("total", e.Total.String()),
			zap.String("status", e.Status.String()),
		)
	case *ledger.BillingPeriodUpdatedEvent:
		h.logger.Info("bill changed",
			zap.String("bill_id", e.BillID.String()),
			zap.String("tenant_id", e.TenantID.String()),
			zap.String("period", e.Period.String()),
			zap.String("total", e.Total.String()),
			zap.String("status", e.Status.String()),
		)
	case *ledger.PropertyPaymentPaidEvent:
		h.logger.Info("payment settled",
			zap.String("payment_id", e.PaymentID.String()),
			zap.String("property_id", e.PropertyID.String()),
			zap.String("amount", e.Amount.String()),
			zap.Time("paid_date", e.PaidDate),
		)
	case *ledger.PropertyPaymentOverdueEvent:
		h.logger.Warn("payment overdue",
			zap.String("payment_id", e.PaymentID.String()),
			zap.String("property_id", e.PropertyID.String()),
			zap.String("amount", e.Amount.String()),
			zap.Time("due_date", e.DueDate),
		)
	default:
		h.logger.Debug("unhandled ledger event",
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}

var _ shared.EventHandler = (*LedgerActivityHandler)(nil)
